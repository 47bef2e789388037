package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"
	"go.uber.org/zap"

	"geoshape/internal/geom"
	"geoshape/internal/logger"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !geom.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath loads any supported format into the model.
func (m *Model) loadPath(p string) {
	l, err := geom.Load(p, m.opts)
	if err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selPath = p
	m.setLayer(l)
	m.status = "loaded: " + filepath.Base(p) + "  " + countsLine(l)
	// If attributes are currently shown, verify availability for the new dataset
	if m.showAttrs {
		m.refreshAttrsFromCurrent()
	}
}

// loadWKT renders pasted WKT. Pasted data has no path and no attributes.
func (m *Model) loadWKT(w string) bool {
	l, err := geom.ParseWKT(w, m.opts)
	if err != nil {
		logger.L.Debug("paste rejected", zap.Error(err))
		m.status = "wkt error: " + err.Error()
		return false
	}
	m.selPath = ""
	m.setLayer(l)
	m.zoom = 1.0
	m.offsetX, m.offsetY = 0, 0
	m.status = "rendered WKT  " + countsLine(l)
	return true
}

func countsLine(l *geom.Layer) string {
	pts, lines, polys := l.Counts()
	return fmt.Sprintf("counts: pts=%d ls=%d poly=%d vertices=%d", pts, lines, polys, l.PointCount())
}
