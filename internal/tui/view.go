package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tildaslashalef/healthsearch/internal/annotation"
	"github.com/tildaslashalef/healthsearch/internal/healthsearch"
	"github.com/tildaslashalef/healthsearch/internal/search"
	"github.com/tildaslashalef/healthsearch/internal/utils"
)

const (
	footerHeight     = 2
	productCardLines = 9
	minSidebarWidth  = 34
	maxSidebarWidth  = 56
)

const (
	DisclaimerTitle = "⚠️  Please note"
	DisclaimerText  = "Healthsearch is NOT intended to give any health advice. " +
		"All results are purely based on the content of user-written reviews. " +
		"Healthsearch is a technical demonstration that presents a proof of concept " +
		"for one of many usecases with Weaviate. Please ask a medical professional " +
		"before taking any supplements for your condition."
	DisclaimerButton = "I Understand"

	ConsoleTooltip = "Search for products with specific health effects based on user-written reviews. " +
		"Press Generate to create a GraphQL Query. Use the generated query to retrieve a list " +
		"of products, which you can select for more information."
	QueryTooltip = "The generated GraphQL will be displayed here and can be copied to your " +
		"clipboard using the Copy to clipboard button."

	CopiedText = "Copied to clipboard"
)

// View renders the UI based on the model's current state.
func (m Model) View() string {
	if !m.ready {
		return "Initializing...\n"
	}

	var body string
	if m.state.DisclaimerOpen {
		body = m.renderDisclaimer()
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderSidebar(),
			m.renderMain(),
		)
	}

	var footer string
	if m.showHelp {
		footer = m.help.View(m.keys)
	} else {
		footer = m.help.ShortHelpView(m.keys.ShortHelp())
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Height(m.bodyHeight()).MaxHeight(m.bodyHeight()).Render(body),
		m.renderStatusBar(),
		footer,
	)
}

func (m Model) bodyHeight() int {
	return max(m.height-footerHeight, 1)
}

// sidebarWidth is 0 when collapsed and the full width on narrow terminals
func (m Model) sidebarWidth() int {
	if m.state.SidebarCollapsed {
		return 0
	}
	if m.width < search.MediumWidth {
		return m.width
	}
	return min(max(m.width/3, minSidebarWidth), maxSidebarWidth)
}

func (m Model) mainWidth() int {
	return max(m.width-m.sidebarWidth(), 0)
}

func (m Model) renderDisclaimer() string {
	width := min(max(m.width-10, 20), 70)
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Warning.Render(DisclaimerTitle),
		"",
		m.styles.Paragraph.Render(wordwrap.String(DisclaimerText, width-8)),
		"",
		m.styles.ModalButton.Render(DisclaimerButton),
		m.styles.Subtle.Render("press enter"),
	)

	return lipgloss.Place(m.width, m.bodyHeight(),
		lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Width(width).Render(content),
	)
}

func renderBanner(styles Styles) string {
	return styles.Banner.Render("✚ H E A L T H S E A R C H")
}

// --- Sidebar ---

func (m Model) renderSidebar() string {
	w := m.sidebarWidth()
	if w == 0 {
		return ""
	}

	sections := []string{
		renderBanner(m.styles),
		m.renderBadges(w),
		m.renderConsoleCard(w),
	}
	if strings.TrimSpace(m.state.TransformedQuery) != "" {
		sections = append(sections, m.renderQueryCard(w))
	}

	return lipgloss.NewStyle().Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderBadges(width int) string {
	status := m.styles.BadgeOffline.Render("Demo " + search.Offline.String())
	if m.state.APIStatus == search.Online {
		status = m.styles.BadgeOnline.Render("Demo " + search.Online.String())
	}

	version := m.version
	if version == "" {
		version = "dev"
	}

	badges := []string{
		status,
		m.styles.Badge.Render(version),
		m.styles.Badge.Render(fmt.Sprintf("Requests %d", m.state.Requests)),
		m.styles.Badge.Render(fmt.Sprintf("Cached %d", m.state.Cached)),
	}
	return wordwrap.String(strings.Join(badges, " "), width)
}

func (m Model) renderConsoleCard(width int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("💬 Natural Language Query"))
	b.WriteString("\n")
	b.WriteString(m.textarea.View())
	b.WriteString("\n")
	b.WriteString(m.renderSuggestions(width - 4))
	b.WriteString("\n\n")

	button := m.styles.Success.Render("⏎ Generate")
	if m.state.Loading {
		button = m.spinner.View() + " " + m.styles.Subtle.Render(search.GeneratingText)
	}
	b.WriteString(button)

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.styles.Tooltip.Render(wordwrap.String(ConsoleTooltip, width-4)))
	}

	style := m.styles.ConsoleCard
	if m.focus == FocusInput {
		style = style.BorderForeground(DefaultTheme.Secondary)
	}
	return style.Width(width - 2).Render(b.String())
}

// renderSuggestions shows the visible carousel page, numbered for picking
func (m Model) renderSuggestions(width int) string {
	w := m.state.Suggestions
	style := m.styles.Suggestion
	if m.state.Fading {
		style = m.styles.SuggestionDim
	}

	lines := make([]string, 0, w.PageSize()+1)
	for i, s := range w.Visible() {
		lines = append(lines, style.Render(utils.Truncate(fmt.Sprintf("%d %s", i+1, s), max(width-2, 1))))
	}
	if w.Pages() > 1 {
		lines = append(lines, m.styles.Subtle.Render(fmt.Sprintf("[ page %d/%d ]", w.Page()+1, w.Pages())))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderQueryCard(width int) string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("📝 GraphQL Query"))
	b.WriteString("\n")
	b.WriteString(m.renderMarkdown("```graphql\n" + strings.TrimSpace(m.state.TransformedQuery) + "\n```"))
	b.WriteString("\n")

	if m.copied {
		b.WriteString(m.styles.Success.Render(CopiedText))
	} else {
		b.WriteString(m.styles.Info.Render("c 📋 Copy to clipboard"))
	}

	if m.showHelp {
		b.WriteString("\n")
		b.WriteString(m.styles.Tooltip.Render(wordwrap.String(QueryTooltip, width-4)))
	}

	return m.styles.QueryCard.Width(width - 2).Render(b.String())
}

// renderMarkdown renders through glamour, falling back to the raw text
func (m Model) renderMarkdown(md string) string {
	if m.renderer == nil {
		return md
	}
	out, err := m.renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.Trim(out, "\n")
}

// --- Main pane ---

func (m Model) renderMain() string {
	w := m.mainWidth()
	if w == 0 {
		return ""
	}

	var content string
	switch {
	case m.state.IsEasterEgg():
		content = m.renderEasterEgg(w)
	case m.state.Selected != nil:
		content = m.viewport.View()
	default:
		summary := m.renderSummaryCard(w)
		grid := m.renderGrid(w, m.bodyHeight()-lipgloss.Height(summary))
		content = lipgloss.JoinVertical(lipgloss.Left, summary, grid)
	}

	return lipgloss.NewStyle().Width(w).Render(content)
}

func (m Model) renderEasterEgg(width int) string {
	md := "# " + strings.TrimSpace(m.state.TransformedQuery) + "\n\n" + m.state.GenerativeResult
	return lipgloss.Place(width, m.bodyHeight(),
		lipgloss.Center, lipgloss.Center,
		m.styles.SummaryCard.Render(m.renderMarkdown(md)),
	)
}

func (m Model) renderSummaryCard(width int) string {
	title := m.styles.Title.Render("🤖 Generated Product Summary")
	if m.state.Loading {
		title = m.spinner.View() + " " + title
	}

	body := wordwrap.String(m.state.GenerativeResult, max(width-6, 10))
	if strings.HasPrefix(m.state.GenerativeResult, search.ErrorPrefix) {
		body = m.styles.Error.Render(body)
	} else {
		body = m.styles.Paragraph.Render(body)
	}

	return m.styles.SummaryCard.Width(width - 2).Render(title + "\n" + body)
}

// renderGrid lays products out in rows, scrolled so the cursor stays visible
func (m Model) renderGrid(width, height int) string {
	results := m.state.Results
	if len(results) == 0 {
		return ""
	}

	cols := search.ColumnsForWidth(width)
	rows := search.Rows(len(results), cols)
	cardWidth := max(width/cols-2, 12)

	visibleRows := max(height/productCardLines, 1)
	cursorRow := m.state.Cursor / cols
	start := max(cursorRow-visibleRows+1, 0)

	var lines []string
	for r := start; r < rows && r < start+visibleRows; r++ {
		var cards []string
		for c := 0; c < cols; c++ {
			p := search.At(results, r, c, cols)
			if p == nil {
				continue
			}
			active := search.Index(r, c, cols) == m.state.Cursor && m.focus == FocusResults
			cards = append(cards, m.renderProductCard(*p, cardWidth, active))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m Model) renderProductCard(p healthsearch.Product, width int, active bool) string {
	inner := max(width-4, 8)

	var b strings.Builder
	b.WriteString(m.styles.Subtle.Render(utils.Truncate(brandOrDefault(p), inner)))
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(utils.Truncate(nameOrDefault(p), inner)))
	b.WriteString("\n")
	b.WriteString(m.renderStars(p.Rating))
	b.WriteString("\n")
	b.WriteString(m.styles.Info.Render(fmt.Sprintf("%d reviews - enter to see", len(p.Reviews))))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtle.Render("🤖 Generated Review Summary:"))
	b.WriteString("\n")

	summary := wordwrap.String(utils.OneLine(p.Summary), inner)
	if lines := strings.Split(summary, "\n"); len(lines) > 2 {
		summary = strings.Join(lines[:2], "\n") + "…"
	}
	b.WriteString(m.styles.Paragraph.Render(summary))

	style := m.styles.ProductCard
	if active {
		style = m.styles.ProductActive
	}
	return style.Width(width).Render(b.String())
}

// renderStars draws the rating bar followed by the numeric rating
func (m Model) renderStars(rating float64) string {
	full, half, empty := search.Stars(rating)
	return m.styles.StarFull.Render(strings.Repeat("★", full)+strings.Repeat("✬", half)) +
		m.styles.StarEmpty.Render(strings.Repeat("☆", empty)) +
		m.styles.Subtle.Render(fmt.Sprintf(" %.1f", rating))
}

// renderDetailContent builds the scrollable product detail page
func (m Model) renderDetailContent() string {
	p := m.state.Selected
	if p == nil {
		return ""
	}
	width := max(m.viewport.Width-4, 20)

	var b strings.Builder
	b.WriteString(m.styles.Subtle.Render("esc ← Back"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Subtle.Render(brandOrDefault(*p)))
	b.WriteString("\n")
	b.WriteString(m.styles.Title.Render(nameOrDefault(*p)))
	b.WriteString("\n")
	b.WriteString(m.renderStars(p.Rating))
	b.WriteString("\n\n")

	if p.Description != "" {
		b.WriteString(m.styles.Paragraph.Render(wordwrap.String(p.Description, width)))
		b.WriteString("\n\n")
	}

	ingredients := p.Ingredients
	if ingredients == "" {
		ingredients = "No ingredients provided."
	}
	b.WriteString(m.styles.Info.Render("🍏 Ingredients:"))
	b.WriteString("\n")
	b.WriteString(m.styles.Paragraph.Render(wordwrap.String(ingredients, width)))
	b.WriteString("\n\n")

	distance := "N/A"
	if p.Distance != 0 {
		distance = fmt.Sprintf("%g", p.Distance)
	}
	b.WriteString(m.styles.Info.Render("📏 Distance: "))
	b.WriteString(m.styles.Paragraph.Render(distance))
	b.WriteString("\n\n")

	if p.Effects != "" {
		b.WriteString(m.styles.Info.Render("💊 Effects:"))
		b.WriteString("\n")
		b.WriteString(m.styles.Paragraph.Render(wordwrap.String(p.Effects, width)))
		b.WriteString("\n\n")
	}

	if p.Summary != "" {
		b.WriteString(m.styles.Info.Render("🤖 Generated Review Summary:"))
		b.WriteString("\n")
		b.WriteString(m.styles.Paragraph.Render(wordwrap.String(p.Summary, width)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.styles.Info.Render(fmt.Sprintf("📝 Reviews (%d)", len(p.Reviews))))
	b.WriteString("\n")
	for i, spans := range m.parser.ParseAll(p.Reviews) {
		b.WriteString(m.styles.Subtle.Render(fmt.Sprintf("%d.", i+1)))
		b.WriteString(" ")
		b.WriteString(wordwrap.String(m.renderSpans(spans), width))
		b.WriteString("\n\n")
	}

	return m.styles.DetailCard.Width(max(m.viewport.Width-2, 10)).Render(strings.TrimRight(b.String(), "\n"))
}

// renderSpans highlights annotated spans of a review
func (m Model) renderSpans(spans []annotation.TextSpan) string {
	parts := make([]string, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if s.IsAnnotation {
			parts = append(parts, m.styles.Annotation.Render(s.Text))
		} else {
			parts = append(parts, m.styles.Paragraph.Render(s.Text))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) renderStatusBar() string {
	left := fmt.Sprintf("focus: %s", m.focus)
	if m.state.Loading {
		left = m.spinner.View() + " " + search.GeneratingText
	}
	if m.statusMsg != "" {
		left = m.statusMsg
	}

	right := fmt.Sprintf("%d results", len(m.state.Results))
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return m.styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func brandOrDefault(p healthsearch.Product) string {
	if p.Brand == "" {
		return "No Brand"
	}
	return p.Brand
}

func nameOrDefault(p healthsearch.Product) string {
	if p.Name == "" {
		return "Product Name"
	}
	return p.Name
}
