// Package preview shows read-only previews of linked files in hover popovers.
package preview

import (
	"io/fs"
	"path"

	"github.com/bethropolis/fencedit/internal/editor"
	"github.com/bethropolis/fencedit/internal/event"
	"github.com/bethropolis/fencedit/internal/logger"
	"github.com/bethropolis/fencedit/internal/types"
)

// Settings configures previews.
type Settings struct {
	Extensions []string `toml:"extensions"`
	// Width and Height are the panel size in cells.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	Gap    int `toml:"gap"`
}

// DefaultExtensions are the file types previewed out of the box.
var DefaultExtensions = []string{"ts", "js", "py", "css", "c", "cpp", "go", "rs", "java", "lua", "php"}

// DefaultSettings returns the stock preview settings.
func DefaultSettings() Settings {
	return Settings{
		Extensions: append([]string(nil), DefaultExtensions...),
		Width:      70,
		Height:     20,
		Gap:        1,
	}
}

// Host is a surface that can display a preview view.
type Host interface {
	ShowPreview(v *View)
}

// View is a mounted read-only preview.
type View struct {
	Editor editor.Editor
	Origin types.Point
	// Side is true when the panel sits beside the anchor instead of above
	// or below it.
	Side     bool
	Width    int
	Height   int
	Ext      string
	disposed bool
}

// Bounds returns the screen area of the view.
func (v *View) Bounds() types.Rect {
	return types.Rect{X: v.Origin.X, Y: v.Origin.Y, Width: v.Width, Height: v.Height}
}

// Dispose releases the editor. Repeated calls are no-ops.
func (v *View) Dispose() {
	if v == nil || v.disposed {
		return
	}
	v.disposed = true
	v.Editor.Dispose()
}

// Disposed reports whether Dispose has run.
func (v *View) Disposed() bool { return v.disposed }

// Bridge turns hover popovers over links into previews of the linked file.
// At most one view is alive at a time.
type Bridge struct {
	mounter  editor.Mounter
	vault    fs.FS
	resolver Resolver
	allow    Allowlist
	settings Settings
	opts     editor.Options

	viewportHeight int
	current        *View
}

// NewBridge creates a bridge reading linked files from vault.
func NewBridge(m editor.Mounter, vault fs.FS, settings Settings, opts editor.Options) *Bridge {
	opts.ReadOnly = true
	return &Bridge{
		mounter:  m,
		vault:    vault,
		resolver: FSResolver{Vault: vault},
		allow:    NewAllowlist(settings.Extensions...),
		settings: settings,
		opts:     opts,
	}
}

// SetResolver replaces the link resolver.
func (b *Bridge) SetResolver(r Resolver) { b.resolver = r }

// Resize records the current viewport height used for placement.
func (b *Bridge) Resize(viewportHeight int) { b.viewportHeight = viewportHeight }

// Current returns the live view, if any.
func (b *Bridge) Current() *View { return b.current }

// Subscribe registers HandleSurface for surface-created events on m.
func (b *Bridge) Subscribe(m *event.Manager) event.SubscriptionID {
	return m.Subscribe(event.TypeSurfaceCreated, func(e event.Event) bool {
		data, ok := e.Data.(event.SurfaceCreatedData)
		if !ok {
			return false
		}
		return b.HandleSurface(data)
	})
}

// RenderPreview mounts a read-only editor over text for a link at anchor.
// Nothing happens unless ext is allow-listed. The previous view is disposed
// before the new one is created.
func (b *Bridge) RenderPreview(text, ext string, anchor types.Rect) (*View, bool) {
	if !b.allow.Allows(ext) {
		logger.DebugTagf("preview", "Preview: extension %q not allowed", ext)
		return nil, false
	}
	b.Dismiss()

	origin, side := Place(anchor, b.viewportHeight, b.settings.Width, b.settings.Height, b.settings.Gap)
	container := editor.Container{X: origin.X, Y: origin.Y, Width: b.settings.Width, Height: b.settings.Height}

	ed, err := b.mounter.Mount(container, text, normalizeExt(ext), b.opts)
	if err != nil {
		logger.DebugTagf("preview", "Preview: mount failed: %v", err)
		return nil, false
	}

	b.current = &View{
		Editor: ed,
		Origin: origin,
		Side:   side,
		Width:  b.settings.Width,
		Height: b.settings.Height,
		Ext:    normalizeExt(ext),
	}
	return b.current, true
}

// HandleSurface reacts to a newly created host surface. Only hover popovers
// whose surface implements Host are used; the link comes with the message.
// It reports whether a preview was shown. Failures are logged at debug level
// and otherwise ignored.
func (b *Bridge) HandleSurface(data event.SurfaceCreatedData) bool {
	if data.Kind != event.SurfaceHoverPopover {
		return false
	}
	host, ok := data.Surface.(Host)
	if !ok {
		logger.DebugTagf("preview", "Preview: surface %T cannot host a preview", data.Surface)
		return false
	}
	link := data.Link
	if link.LinkText == "" || link.SourcePath == "" {
		return false
	}

	target, ok := b.resolver.Resolve(link.LinkText, link.SourcePath)
	if !ok {
		logger.DebugTagf("preview", "Preview: cannot resolve %q from %q", link.LinkText, link.SourcePath)
		return false
	}
	ext := path.Ext(target)
	if !b.allow.Allows(ext) {
		return false
	}

	content, err := fs.ReadFile(b.vault, target)
	if err != nil {
		logger.DebugTagf("preview", "Preview: read %s: %v", target, err)
		return false
	}

	view, ok := b.RenderPreview(string(content), ext, link.Anchor)
	if !ok {
		return false
	}
	host.ShowPreview(view)
	return true
}

// Dismiss disposes the live view.
func (b *Bridge) Dismiss() {
	if b.current != nil {
		b.current.Dispose()
		b.current = nil
	}
}
