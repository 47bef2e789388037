package tui

import (
	"os"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"geoshape/internal/config"
	"geoshape/internal/geom"
)

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool

	zoom    float64
	offsetX int
	offsetY int

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// Data
	opts  geom.Options
	layer *geom.Layer
	// projection box; fixed between loads so edits do not move the view
	bbox geom.BBox

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// layer visibility
	showPoints bool
	showLines  bool
	showPolys  bool

	// inspect popup
	inspectPopup string

	// hover state
	hovering    bool
	hoverCellX  int
	hoverCellY  int
	hoverMicX   int
	hoverMicY   int
	hoverHasGeo bool
	hoverLon    float64
	hoverLat    float64
	hoverVertex vertexRef

	// part snapshots taken before each in-part edit, newest last
	history []partSnapshot

	// attributes table
	showAttrs bool
	tbl       table.Model
}

// vertexRef addresses one vertex of the current layer.
type vertexRef struct {
	shape, part, index int
	ok                 bool
}

func New(cfg config.Config) Model {
	m := Model{
		showSidebar: false,
		helpVisible: true,
		zoom:        cfg.Zoom,
		status:      "geomap ready",
		opts:        cfg.Options(),
		layer:       &geom.Layer{},
		bbox:        geom.EmptyBBox(),
		showPoints:  true,
		showLines:   true,
		showPolys:   true,
	}
	if m.zoom <= 0 {
		m.zoom = 1.0
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Files"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste WKT here (POINT, LINESTRING, POLYGON, MULTI*, Z/M). Press Enter to render; Esc to cancel."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	// attributes table setup (columns will be inferred per dataset)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(12)
	m.refreshDir()
	return m
}

// NewWithPath preloads a file's data at launch.
func NewWithPath(cfg config.Config, path string) Model {
	m := New(cfg)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// setLayer replaces the data and resets the viewport onto its extent.
func (m *Model) setLayer(l *geom.Layer) {
	m.layer = l
	m.bbox = l.Extent()
	m.hoverVertex = vertexRef{}
	m.history = nil
	m.inspectPopup = ""
	pts, lines, polys := l.Counts()
	m.showPolys = polys > 0
	m.showLines = lines > 0
	m.showPoints = pts > 0
}
