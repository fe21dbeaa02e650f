package tui

// Layout proportions
const (
	SidebarWidth           = 24
	InspectorColumnPercent = 40

	MinColumnWidth = 15

	// Featured banner on top, footer line at the bottom
	ChromeHeight = 2
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	sidebarWidth   int
	listWidth      int
	inspectorWidth int // 0 if not shown
}

// calculateColumnLayout computes pane widths from the window width and
// inspector visibility
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	layout := columnLayout{
		sidebarWidth: min(SidebarWidth, availableWidth/3),
	}
	rest := availableWidth - layout.sidebarWidth

	if m.ShowInspector {
		layout.inspectorWidth = max(rest*InspectorColumnPercent/100, MinColumnWidth)
		layout.listWidth = max(rest-layout.inspectorWidth, MinColumnWidth)
	} else {
		layout.listWidth = max(rest, MinColumnWidth)
	}

	return layout
}

// updateLayout updates component sizes based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	layout := m.calculateColumnLayout(m.Width)

	m.Sidebar.SetSize(layout.sidebarWidth, contentHeight)
	m.List.SetSize(layout.listWidth, contentHeight)
	if m.ShowInspector {
		m.Inspector.SetSize(layout.inspectorWidth, contentHeight)
	}
}
