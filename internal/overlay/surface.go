package overlay

import (
	"github.com/ytget/subtitle-overlay/internal/model"
	"github.com/ytget/subtitle-overlay/internal/region"
)

// Surface is the rendering target of an overlay
type Surface interface {
	region.Surface

	Show()
	Hide()
	Visible() bool
	// Size returns the current pixel size of the overlay
	Size() model.Size
	// Refresh is called after every state change that affects the layout
	Refresh()
}

// Resizer is implemented by surfaces whose size is set by the event stream
type Resizer interface {
	Resize(size model.Size)
}

// MemorySurface is a Surface that only records state. It backs headless
// replays and tests.
type MemorySurface struct {
	size       model.Size
	visible    bool
	containers []*region.Container
	refreshes  int
}

// NewMemorySurface creates a hidden surface of the given size
func NewMemorySurface(size model.Size) *MemorySurface {
	return &MemorySurface{size: size}
}

func (s *MemorySurface) AddContainer(c *region.Container) {
	s.containers = append(s.containers, c)
}

func (s *MemorySurface) RemoveContainer(c *region.Container) {
	for i, o := range s.containers {
		if o == c {
			s.containers = append(s.containers[:i], s.containers[i+1:]...)
			return
		}
	}
}

// Containers returns the registered containers
func (s *MemorySurface) Containers() []*region.Container {
	return s.containers
}

func (s *MemorySurface) Show() {
	s.visible = true
}

func (s *MemorySurface) Hide() {
	s.visible = false
}

func (s *MemorySurface) Visible() bool {
	return s.visible
}

func (s *MemorySurface) Size() model.Size {
	return s.size
}

// Resize sets the surface size
func (s *MemorySurface) Resize(size model.Size) {
	s.size = size
}

func (s *MemorySurface) Refresh() {
	s.refreshes++
}

// Refreshes returns how often the surface was refreshed
func (s *MemorySurface) Refreshes() int {
	return s.refreshes
}
