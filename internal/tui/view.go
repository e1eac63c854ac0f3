package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"

	"daygrid/internal/block"
	"daygrid/internal/timeline"
)

// View renders the full screen: header, hour ruler, the packed block
// rows, and the footer, with any open modal spliced over the center.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	vm := timeline.Build(m.blocks)
	vp := m.viewport()

	var sb strings.Builder
	sb.WriteString(m.renderTitle())
	sb.WriteString("\n")
	sb.WriteString(m.renderTabs())
	sb.WriteString("\n")
	sb.WriteString(m.renderRuler(vp))
	sb.WriteString("\n")
	for row := 0; row < vm.RowCount(); row++ {
		sb.WriteString(m.renderRow(row, vm, vp))
		sb.WriteString("\n")
	}
	sb.WriteString(m.renderFooter())

	base := sb.String()
	if m.mode != ModeNormal {
		base = overlayCenter(base, m.renderModal(), m.width, m.height)
	}
	return zone.Scan(base)
}

func (m Model) renderTitle() string {
	title := m.styles.TitleStyle.Render(" daygrid")
	if m.loading {
		return title + m.styles.HelpStyle.Render("  loading...")
	}
	return title
}

func (m Model) renderTabs() string {
	if len(m.calendars) == 0 {
		return m.styles.HelpStyle.Render(" no calendars")
	}
	tabs := make([]string, 0, len(m.calendars))
	for i, c := range m.calendars {
		style := m.styles.TabStyle
		if i == m.calendar {
			style = m.styles.TabActive
		}
		tabs = append(tabs, style.Render(c.Name))
	}
	return " " + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderRuler draws hour labels along the strip at the configured
// marker step.
func (m Model) renderRuler(vp timeline.Viewport) string {
	width := int(vp.Width)
	cells := make([]rune, width)
	for i := range cells {
		cells[i] = ' '
	}
	for _, mark := range timeline.Markers(float64(m.config.Timeline.MarkerStepHours)) {
		label := block.FormatClock(mark.Time)
		col := int(mark.Fraction * vp.Width)
		for j, r := range label {
			if col+j >= width {
				break
			}
			cells[col+j] = r
		}
	}
	return strings.Repeat(" ", gutterLeft) + m.styles.RulerStyle.Render(string(cells))
}

// renderRow draws one packed row of the strip. Each segment gets a
// mouse zone; the head segment of a block additionally gets one-cell
// zones on its edges for the resize grips.
func (m Model) renderRow(row int, vm timeline.ViewModel, vp timeline.Viewport) string {
	segs := make([]timeline.Segment, 0, 4)
	for _, s := range vm.Segments {
		if s.Row == row {
			segs = append(segs, s)
		}
	}
	sort.SliceStable(segs, func(i, j int) bool { return segs[i].Start < segs[j].Start })

	var sb strings.Builder
	sb.WriteString(strings.Repeat(" ", gutterLeft))

	cursor := int(vp.Left)
	limit := int(vp.Left + vp.Width)
	for _, s := range segs {
		x0, x1 := colSpan(vp, s.Start, s.End)
		if x0 < cursor {
			x0 = cursor
		}
		if x1 <= x0 {
			continue
		}
		if x0 > cursor {
			sb.WriteString(m.styles.EmptyRowStyle.Render(strings.Repeat(" ", x0-cursor)))
		}
		sb.WriteString(m.renderSegment(s, x1-x0))
		cursor = x1
	}
	if cursor < limit {
		sb.WriteString(m.styles.EmptyRowStyle.Render(strings.Repeat(" ", limit-cursor)))
	}
	return sb.String()
}

// renderSegment draws one segment at the given cell width and wraps
// it in its mouse zones.
func (m Model) renderSegment(s timeline.Segment, width int) string {
	b := s.Block
	style := m.styles.BlockStyle(b.Color)
	if s.Continuation {
		style = m.styles.ContinuationStyle(b.Color)
	}
	if b.ID == m.selected {
		style = m.styles.SelectedStyle
	}
	if target, ok := m.machine.Target(); ok && target == b.ID {
		style = style.Bold(true)
	}

	if s.Continuation {
		return zone.Mark(zoneBlockTail+b.ID, style.Render(fitLabel("‥"+b.Label, width)))
	}

	if width < 3 {
		return zone.Mark(zoneBlockBody+b.ID, style.Render(fitLabel(b.Label, width)))
	}

	body := fitLabel(segmentText(b, width-2), width-2)
	return zone.Mark(zoneHandleStart+b.ID, style.Render("▐")) +
		zone.Mark(zoneBlockBody+b.ID, style.Render(body)) +
		zone.Mark(zoneHandleEnd+b.ID, style.Render("▌"))
}

// segmentText picks how much detail fits: label plus times when the
// segment is wide enough, label alone otherwise.
func segmentText(b block.Block, width int) string {
	full := fmt.Sprintf(" %s %s", b.TimeRange(), b.Label)
	if len(full) <= width {
		return full
	}
	return " " + b.Label
}

// fitLabel pads or truncates s to exactly width cells.
func fitLabel(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) > width {
		return string(runes[:width])
	}
	return s + strings.Repeat(" ", width-len(runes))
}

func (m Model) renderFooter() string {
	var lines []string

	if b, ok := m.blockByID(m.selected); ok {
		lines = append(lines, " "+m.styles.StatusStyle.Render(
			fmt.Sprintf("%s  %s  (%.2fh)", b.TimeRange(), b.Label, b.Duration())))
	} else {
		lines = append(lines, "")
	}

	switch {
	case m.err != nil:
		lines = append(lines, " "+m.styles.ErrorStyle.Render(m.err.Error()))
	case m.statusMsg != "":
		lines = append(lines, " "+m.styles.StatusStyle.Render(m.statusMsg))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, " "+m.styles.HelpStyle.Render(
		"drag move/resize · click empty: new · n new · e label · t times · x delete · y yank · tab calendar · q quit"))
	return strings.Join(lines, "\n")
}

// renderModal draws the box for the active modal mode.
func (m Model) renderModal() string {
	var title, body string
	switch m.mode {
	case ModeLabelEdit:
		title = "Edit label"
		body = m.labelInput.View() + "\n\n" + m.styles.ModalHintStyle.Render("enter save · esc cancel")
	case ModeTimeEdit:
		startLabel := m.styles.ModalLabelStyle.Render("start ")
		endLabel := m.styles.ModalLabelStyle.Render("end   ")
		title = "Edit times"
		body = startLabel + m.startInput.View() + "\n" +
			endLabel + m.endInput.View() + "\n\n" +
			m.styles.ModalHintStyle.Render("tab switch · enter save · esc cancel")
		if m.err != nil {
			body += "\n" + m.styles.ErrorStyle.Render(m.err.Error())
		}
	case ModeConfirmDelete:
		b, _ := m.blockByID(m.modalBlock)
		title = "Delete block"
		body = m.styles.ModalBodyStyle.Render(fmt.Sprintf("%s %s", b.TimeRange(), b.Label)) +
			"\n\n" + m.styles.ModalHintStyle.Render("y delete · n cancel")
	case ModeNewCalendar:
		title = "New calendar"
		body = m.nameInput.View() + "\n\n" + m.styles.ModalHintStyle.Render("enter create · esc cancel")
	default:
		return ""
	}
	return m.styles.ModalStyle.Render(m.styles.ModalTitleStyle.Render(title) + "\n\n" + body)
}
