package orrery

import (
	"fmt"

	"github.com/agiangrant/orrery/backend"
	"github.com/agiangrant/orrery/finalize"
)

// nativeHandle frees one backend handle.
type nativeHandle struct {
	loader backend.Loader
	kind   backend.ResourceKind
	h      backend.Handle
}

func (n nativeHandle) Release() { n.loader.Free(n.kind, n.h) }

// resource is the shared part of every wrapper: a handle plus its owner
// reference. A nil ref marks a borrowed handle that is never freed.
type resource struct {
	ref *finalize.Ref
	h   backend.Handle
}

// Handle returns the native handle for passing back to the backend.
func (res resource) Handle() backend.Handle { return res.h }

// Close drops this owner. The native handle is freed once every clone has
// been closed: immediately while the runtime is running, otherwise at the
// next Start. Close is idempotent.
func (res resource) Close() {
	if res.ref != nil {
		res.ref.Close()
	}
}

func (res resource) clone() resource {
	if res.ref == nil {
		return res
	}
	return resource{ref: res.ref.Clone(), h: res.h}
}

func (r *Runtime) loader() (backend.Loader, error) {
	l, ok := r.backend.(backend.Loader)
	if !ok {
		return nil, ErrNoLoader
	}
	return l, nil
}

func (r *Runtime) own(l backend.Loader, kind backend.ResourceKind, h backend.Handle) resource {
	return resource{
		ref: finalize.NewRef(r.finalizer, nativeHandle{loader: l, kind: kind, h: h}),
		h:   h,
	}
}

// Font is a loaded font at one point size.
type Font struct {
	resource
	Size int
}

// OpenFont loads the font at path in the given point size.
func (r *Runtime) OpenFont(path string, size int) (*Font, error) {
	l, err := r.loader()
	if err != nil {
		return nil, err
	}
	h, err := l.OpenFont(path, size)
	if err != nil {
		return nil, fmt.Errorf("failed to open font %s: %w", path, err)
	}
	return &Font{resource: r.own(l, backend.ResourceFont, h), Size: size}, nil
}

// Clone returns another owner of the same font.
func (f *Font) Clone() *Font {
	return &Font{resource: f.clone(), Size: f.Size}
}

// Image is a loaded texture.
type Image struct {
	resource
}

// LoadImage loads the image at path.
func (r *Runtime) LoadImage(path string) (*Image, error) {
	l, err := r.loader()
	if err != nil {
		return nil, err
	}
	h, err := l.LoadImage(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load image %s: %w", path, err)
	}
	return &Image{resource: r.own(l, backend.ResourceImage, h)}, nil
}

// Clone returns another owner of the same image.
func (img *Image) Clone() *Image {
	return &Image{resource: img.clone()}
}

// Sound is a loaded audio chunk.
type Sound struct {
	resource
}

// LoadSound loads the sound at path.
func (r *Runtime) LoadSound(path string) (*Sound, error) {
	l, err := r.loader()
	if err != nil {
		return nil, err
	}
	h, err := l.LoadSound(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load sound %s: %w", path, err)
	}
	return &Sound{resource: r.own(l, backend.ResourceSound, h)}, nil
}

// Clone returns another owner of the same sound.
func (s *Sound) Clone() *Sound {
	return &Sound{resource: s.clone()}
}

// Cursor is a mouse cursor.
type Cursor struct {
	resource
	borrowed bool
}

// SystemCursor returns one of the platform's cursors. It belongs to the
// platform: Close never frees it.
func (r *Runtime) SystemCursor(id int) (*Cursor, error) {
	l, err := r.loader()
	if err != nil {
		return nil, err
	}
	h, err := l.SystemCursor(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get system cursor %d: %w", id, err)
	}
	return &Cursor{resource: resource{h: h}, borrowed: true}, nil
}

// NewCursor builds a cursor from img with the hotspot at hotX, hotY. The
// cursor is independent of img, which may be closed afterwards.
func (r *Runtime) NewCursor(img *Image, hotX, hotY int) (*Cursor, error) {
	l, err := r.loader()
	if err != nil {
		return nil, err
	}
	h, err := l.CreateCursor(img.Handle(), hotX, hotY)
	if err != nil {
		return nil, fmt.Errorf("failed to create cursor: %w", err)
	}
	return &Cursor{resource: r.own(l, backend.ResourceCursor, h)}, nil
}

// Borrowed reports whether the cursor belongs to the platform.
func (c *Cursor) Borrowed() bool { return c.borrowed }

// Clone returns another owner of the same cursor.
func (c *Cursor) Clone() *Cursor {
	return &Cursor{resource: c.clone(), borrowed: c.borrowed}
}

// Finalize releases f now if the runtime is running, otherwise at the start
// of the next Start. Use it for native resources that are not wrapped by
// this package.
func (r *Runtime) Finalize(f finalize.Finalizable) {
	r.finalizer.Finalize(f)
}

// PendingFinalizations returns the number of releases waiting for the next
// Start.
func (r *Runtime) PendingFinalizations() int {
	return r.finalizer.Len()
}
