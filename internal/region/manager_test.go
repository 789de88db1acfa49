package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/subtitle-overlay/internal/model"
)

type recordingSurface struct {
	live    map[*Container]bool
	added   int
	removed int
}

func newRecordingSurface() *recordingSurface {
	return &recordingSurface{live: make(map[*Container]bool)}
}

func (s *recordingSurface) AddContainer(c *Container) {
	s.live[c] = true
	s.added++
}

func (s *recordingSurface) RemoveContainer(c *Container) {
	delete(s.live, c)
	s.removed++
}

func label(id string, ref model.RegionRef) *model.Label {
	return &model.Label{ID: id, Text: id, Region: ref}
}

func named(name string) model.RegionRef {
	return model.RegionRef{Kind: model.RegionNamed, ID: name}
}

func TestManager_ContainerLifecycle(t *testing.T) {
	surface := newRecordingSurface()
	m := NewManager(surface)

	l := label("a", named("A"))
	c := m.Add(l)

	got, ok := m.Get("A")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, 1, c.Count())
	assert.True(t, surface.live[c])

	assert.True(t, m.Remove(l))
	_, ok = m.Get("A")
	assert.False(t, ok)
	assert.False(t, surface.live[c])
	assert.Equal(t, 0, m.Len())
}

func TestManager_SharedContainer(t *testing.T) {
	surface := newRecordingSurface()
	m := NewManager(surface)

	a := label("a", model.CEA608RowRegion(3))
	b := label("b", model.CEA608RowRegion(3))
	m.Add(a)
	m.Add(b)

	assert.Equal(t, 1, surface.added)
	c, _ := m.Get("cea608-row-3")
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, "subtitle-position-cea608-row-3", c.Class())

	m.Remove(a)
	assert.Equal(t, 0, surface.removed)
	assert.Same(t, b, c.First())
}

func TestManager_RemoveUnknown(t *testing.T) {
	m := NewManager(newRecordingSurface())

	assert.False(t, m.Remove(label("x", named("missing"))))

	m.Add(label("a", named("A")))
	assert.False(t, m.Remove(label("b", named("A"))), "label not in container")
	c, ok := m.Get("A")
	require.True(t, ok)
	assert.Equal(t, 1, c.Count())
}

func TestManager_RemoveAfterClear(t *testing.T) {
	surface := newRecordingSurface()
	m := NewManager(surface)

	l := label("a", named("A"))
	m.Add(l)
	m.Add(label("b", model.RegionRef{Kind: model.RegionDefault, ID: model.DefaultRegionName}))

	m.Clear()
	assert.Empty(t, surface.live)
	assert.Equal(t, 0, m.Len())
	assert.False(t, m.Remove(l))
}

func TestManager_ReplaceAcrossRegions(t *testing.T) {
	surface := newRecordingSurface()
	m := NewManager(surface)

	old := label("old", model.CEA608RowRegion(14))
	m.Add(old)

	next := label("next", model.CEA608RowRegion(6))
	m.Replace(old, next)

	_, ok := m.Get("cea608-row-14")
	assert.False(t, ok)
	c, ok := m.Get("cea608-row-6")
	require.True(t, ok)
	assert.Same(t, next, c.First())
}

func TestManager_ReplaceKeepsSharedContainer(t *testing.T) {
	surface := newRecordingSurface()
	m := NewManager(surface)

	old := label("old", named("A"))
	c := m.Add(old)
	next := label("next", named("A"))
	m.Replace(old, next)

	got, ok := m.Get("A")
	require.True(t, ok)
	assert.Same(t, c, got)
	assert.Equal(t, []*model.Label{next}, got.Labels())
	assert.Equal(t, 1, surface.added)
	assert.Equal(t, 0, surface.removed)
}

func TestManager_Policies(t *testing.T) {
	m := NewManager(newRecordingSurface())
	region := &model.VTTRegion{ID: "r1", Width: 50, Lines: 2}

	explicit := label("a", named("A"))
	explicit.RegionStyle = "left: 10%; bottom: 20px;"
	box := label("b", model.RegionRef{Kind: model.RegionVTTBox, ID: model.VTTRegionName})
	box.VTT = &model.VTTProperties{}
	vtt := label("c", model.RegionRef{Kind: model.RegionVTT, ID: "r1", VTT: region})
	vtt.VTT = &model.VTTProperties{Region: region}
	plain := label("d", model.RegionRef{Kind: model.RegionDefault, ID: model.DefaultRegionName})

	assert.Equal(t, PolicyExplicit, m.Add(explicit).Policy)
	assert.Equal(t, PolicyStatic, m.Add(box).Policy)
	c := m.Add(vtt)
	assert.Equal(t, PolicyDefault, c.Policy)
	assert.Equal(t, []string{"subtitle-position-vtt", "vtt-region-r1"}, c.Classes)
	assert.Equal(t, PolicyDefault, m.Add(plain).Policy)

	ids := make([]string, 0, 4)
	for _, c := range m.Containers() {
		ids = append(ids, c.ID())
	}
	assert.Equal(t, []string{"A", "vtt", "r1", "default"}, ids)
}
