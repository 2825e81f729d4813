package messages

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/creationhub/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SendGet(t *testing.T) {
	s := NewStore()
	receivers := []string{"bob"}
	id := s.Send("alice", receivers, "hi", "hello there", []string{"c1", "c1", "c2"})
	receivers[0] = "tampered"

	m, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "alice", m.SenderID)
	assert.Equal(t, []string{"bob"}, m.ReceiverIDs)
	assert.Equal(t, []string{"c1", "c2"}, m.Attachments)
	assert.Empty(t, m.RootID)

	_, err = s.Get("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_Preview(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name        string
		title       string
		content     string
		wantTitle   string
		wantContent string
	}{
		{"short", "hi", "body", "hi", "body"},
		{"exact limits", strings.Repeat("t", 20), strings.Repeat("c", 50), strings.Repeat("t", 20), strings.Repeat("c", 50)},
		{"truncated", strings.Repeat("t", 21), strings.Repeat("c", 51), strings.Repeat("t", 20) + "...", strings.Repeat("c", 50) + "..."},
		{"counts runes", strings.Repeat("ü", 25), "ok", strings.Repeat("ü", 20) + "...", "ok"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := s.Send("alice", []string{"bob"}, tt.title, tt.content, nil)
			p, err := s.Preview(id)
			require.NoError(t, err)
			assert.Equal(t, Preview{MessageID: id, SenderID: "alice", Title: tt.wantTitle, Content: tt.wantContent}, p)
		})
	}

	_, err := s.Preview("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_ReplyAndThread(t *testing.T) {
	s := NewStore()
	root := s.Send("alice", []string{"bob"}, "q", "question", nil)
	r1 := s.Send("bob", []string{"alice"}, "re", "answer", nil)
	r2 := s.Send("alice", []string{"bob"}, "re", "thanks", nil)

	require.NoError(t, s.Reply(root, r1))
	require.NoError(t, s.Reply(r1, r2), "reply to a reply joins the root")
	require.NoError(t, s.Reply(root, r1))

	m, err := s.Get(root)
	require.NoError(t, err)
	assert.Equal(t, []string{r1, r2}, m.FollowUps)

	got, err := s.RootOf(r2)
	require.NoError(t, err)
	assert.Equal(t, root, got)

	thread, err := s.Thread(root)
	require.NoError(t, err)
	ids := make([]string, 0, len(thread))
	for _, m := range thread {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []string{root, r1, r2}, ids)

	assert.ErrorIs(t, s.Reply("missing", r1), common.ErrorNotFound)
	assert.ErrorIs(t, s.Reply(root, "missing"), common.ErrorNotFound)
	_, err = s.Thread("missing")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestStore_Thread_NestedAndCyclic(t *testing.T) {
	s := NewStore()
	a := s.Send("u", nil, "a", "", nil)
	b := s.Send("u", nil, "b", "", nil)
	c := s.Send("u", nil, "c", "", nil)
	d := s.Send("u", nil, "d", "", nil)

	// hand-built legacy shape: a -> [b, d], b -> [c, a]
	snap := s.Snapshot()
	for i := range snap.Messages {
		switch snap.Messages[i].ID {
		case a:
			snap.Messages[i].FollowUps = []string{b, d}
		case b:
			snap.Messages[i].FollowUps = []string{c, a}
		}
	}
	s.Restore(snap)

	thread, err := s.Thread(a)
	require.NoError(t, err)
	var titles []string
	for _, m := range thread {
		titles = append(titles, m.Title)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, titles)
}

func TestStore_Attach(t *testing.T) {
	s := NewStore()
	id := s.Send("alice", []string{"bob"}, "t", "c", nil)

	require.NoError(t, s.Attach(id, "c1"))
	require.NoError(t, s.Attach(id, "c1"))

	m, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, []string{"c1"}, m.Attachments)

	assert.ErrorIs(t, s.Attach("missing", "c1"), common.ErrorNotFound)
}

func TestStore_SnapshotRestore(t *testing.T) {
	s := NewStore()
	root := s.Send("alice", []string{"bob"}, "q", "question", []string{"c1"})
	r := s.Send("bob", []string{"alice"}, "re", "answer", nil)
	require.NoError(t, s.Reply(root, r))

	restored := NewStore()
	restored.Restore(s.Snapshot())
	assert.Equal(t, s.Snapshot(), restored.Snapshot())

	thread, err := restored.Thread(root)
	require.NoError(t, err)
	assert.Len(t, thread, 2)
}
