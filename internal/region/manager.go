package region

import (
	"log"

	"github.com/ytget/subtitle-overlay/internal/model"
)

// Surface receives the containers that appear and disappear
type Surface interface {
	AddContainer(c *Container)
	RemoveContainer(c *Container)
}

// Manager owns the region containers of one overlay
type Manager struct {
	surface    Surface
	containers map[string]*Container
	// order keeps containers in creation order for stable layout
	order []*Container
}

// NewManager creates a manager that registers containers with surface
func NewManager(surface Surface) *Manager {
	return &Manager{
		surface:    surface,
		containers: make(map[string]*Container),
	}
}

// Add puts label into the container of its region, creating the container if
// needed, and returns that container
func (m *Manager) Add(label *model.Label) *Container {
	c, ok := m.containers[label.Region.ID]
	if !ok {
		c = newContainer(label)
		m.containers[c.ID()] = c
		m.order = append(m.order, c)
		m.surface.AddContainer(c)
	}
	c.add(label)
	return c
}

// Replace swaps old for label. The new label may belong to another region. The
// new label is added first so that a shared container survives the swap.
func (m *Manager) Replace(old, label *model.Label) {
	m.Add(label)
	m.Remove(old)
}

// Remove takes label out of its container and discards the container once it
// is empty. Removing an unknown label is a no-op.
func (m *Manager) Remove(label *model.Label) bool {
	c, ok := m.containers[label.Region.ID]
	if !ok {
		log.Printf("Warning: region container %q not found for %s", label.Region.ID, label)
		return false
	}
	if !c.remove(label) {
		log.Printf("Warning: %s is not in region container %q", label, c.ID())
		return false
	}

	if c.IsEmpty() {
		delete(m.containers, c.ID())
		for i, o := range m.order {
			if o == c {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		m.surface.RemoveContainer(c)
	}
	return true
}

// Clear removes all containers from the surface
func (m *Manager) Clear() {
	for _, c := range m.order {
		m.surface.RemoveContainer(c)
	}
	m.containers = make(map[string]*Container)
	m.order = nil
}

// Get returns the container with the given id
func (m *Manager) Get(id string) (*Container, bool) {
	c, ok := m.containers[id]
	return c, ok
}

// Containers returns the live containers in creation order
func (m *Manager) Containers() []*Container {
	out := make([]*Container, len(m.order))
	copy(out, m.order)
	return out
}

// Len returns the number of live containers
func (m *Manager) Len() int {
	return len(m.order)
}
