package content

import (
	"testing"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/dmitrijs2005/creationhub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContainerStore_CreateContainer(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)

	c, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, models.Container{ID: id, Name: "chores", Type: models.CreationTodo}, c)
	assert.False(t, c.Private, "containers start public")
}

func TestContainerStore_AddEvent_Idempotent(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)

	require.NoError(t, s.AddEvent(id, "e1"))
	require.NoError(t, s.AddEvent(id, "e1"))
	require.NoError(t, s.AddEvent(id, "e2"))

	c, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1", "e2"}, c.Events)

	assert.ErrorIs(t, s.AddEvent("missing", "e1"), common.ErrorNotFound)
}

func TestContainerStore_RemoveEvent(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)
	require.NoError(t, s.AddEvent(id, "e1"))
	require.NoError(t, s.AddEvent(id, "e2"))

	s.RemoveEvent(id, "e1")
	s.RemoveEvent(id, "e1")
	s.RemoveEvent("missing", "e2")

	c, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"e2"}, c.Events)
}

func TestContainerStore_Mutations(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)

	require.NoError(t, s.SetPrivacy(id, true))
	require.NoError(t, s.Rename(id, "house"))

	c, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, c.Private)
	assert.Equal(t, "house", c.Name)

	assert.ErrorIs(t, s.SetPrivacy("missing", true), common.ErrorNotFound)
	assert.ErrorIs(t, s.Rename("missing", "x"), common.ErrorNotFound)
}

func TestContainerStore_DeleteContainer(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)
	require.NoError(t, s.AddEvent(id, "e1"))
	require.NoError(t, s.AddEvent(id, "e2"))

	assert.Equal(t, []string{"e1", "e2"}, s.DeleteContainer(id))
	assert.False(t, s.Exists(id))
	assert.Nil(t, s.DeleteContainer(id))

	_, err := s.Get(id)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestContainerStore_GetReturnsCopy(t *testing.T) {
	s := NewContainerStore()
	id := s.CreateContainer("chores", models.CreationTodo)
	require.NoError(t, s.AddEvent(id, "e1"))

	c, err := s.Get(id)
	require.NoError(t, err)
	c.Events[0] = "tampered"

	c, err = s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"e1"}, c.Events)
}

func TestContainerStore_ContainerOf(t *testing.T) {
	s := NewContainerStore()
	a := s.CreateContainer("a", models.CreationTodo)
	b := s.CreateContainer("b", models.CreationTagged)
	require.NoError(t, s.AddEvent(a, "e1"))
	require.NoError(t, s.AddEvent(b, "e2"))

	got, ok := s.ContainerOf("e2")
	assert.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = s.ContainerOf("e3")
	assert.False(t, ok)
}

func TestContainerStore_SnapshotRestore(t *testing.T) {
	s := NewContainerStore()
	a := s.CreateContainer("a", models.CreationTodo)
	s.CreateContainer("b", models.CreationSchedule)
	require.NoError(t, s.AddEvent(a, "e1"))
	require.NoError(t, s.SetPrivacy(a, true))

	restored := NewContainerStore()
	restored.Restore(s.Snapshot())

	assert.Equal(t, s.Snapshot(), restored.Snapshot())
	c, err := restored.Get(a)
	require.NoError(t, err)
	assert.True(t, c.Private)
	assert.Equal(t, []string{"e1"}, c.Events)
}
