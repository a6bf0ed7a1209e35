package domain

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/character"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/native"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems"
	"github.com/louisbranch/vttbridge/internal/services/bridge/domain/systems/dsa5"
	"github.com/louisbranch/vttbridge/internal/services/bridge/host"
)

const (
	alrikJSON   = `{"_id":"a1","name":"Alrik","type":"character","system":{"characteristics":{"mu":{"value":14},"kl":{"value":12},"in":{"value":13},"ch":{"value":11},"ff":{"value":10},"ge":{"value":12},"ko":{"value":13},"kk":{"value":12}},"status":{"wounds":{"value":5,"max":30},"astralenergy":{"value":20,"max":30}},"details":{"species":{"value":"Mensch"}}},"items":[{"_id":"s1","name":"Klettern","type":"skill","system":{"talentValue":{"value":6}}}]}`
	bruenorJSON = `{"_id":"d1","name":"Bruenor","type":"character","system":{"abilities":{"str":{"value":16}}}}`
	otherJSON   = `{"_id":"o1","name":"Nobody","type":"character","system":{}}`
	brokenJSON  = `{"_id":"b1","name":"Broken","type":"npc","system":{"characteristics":{"mu":{"value":8},"kl":{"value":8}}}}`
)

// fakeStore keeps actors in memory and records saves.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*native.Record
	saves   []character.Patch
	getErr  error
	listErr error
	saveErr error
	lastOpt host.ListOptions
}

func newFakeStore(docs ...string) *fakeStore {
	s := &fakeStore{records: map[string]*native.Record{}}
	for _, doc := range docs {
		r := native.MustParse(doc)
		s.records[r.ID()] = r
	}
	return s
}

func (s *fakeStore) Get(_ context.Context, identifier string) (*native.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	if r, ok := s.records[identifier]; ok {
		return r.Clone(), nil
	}
	for _, r := range s.records {
		if strings.EqualFold(r.Name(), identifier) {
			return r.Clone(), nil
		}
	}
	return nil, host.NotFound(identifier)
}

func (s *fakeStore) List(_ context.Context, opts host.ListOptions) ([]*native.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastOpt = opts
	if s.listErr != nil {
		return nil, s.listErr
	}
	ids := make([]string, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	records := make([]*native.Record, 0, len(ids))
	for _, id := range ids {
		r := s.records[id]
		if opts.Type != "" && r.Type() != opts.Type {
			continue
		}
		records = append(records, r.Clone())
	}
	return records, nil
}

func (s *fakeStore) Save(_ context.Context, record *native.Record, patch character.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	if _, ok := s.records[record.ID()]; !ok {
		return host.NotFound(record.ID())
	}
	s.records[record.ID()] = record.Clone()
	s.saves = append(s.saves, patch)
	return nil
}

func (s *fakeStore) record(id string) *native.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[id]
}

// fakeCreatureIndex returns canned entries and records the query.
type fakeCreatureIndex struct {
	entries   []dsa5.CreatureEntry
	err       error
	lastQuery host.CreatureQuery
}

func (f *fakeCreatureIndex) PutCreatures(_ context.Context, entries []dsa5.CreatureEntry) error {
	f.entries = append(f.entries, entries...)
	return nil
}

func (f *fakeCreatureIndex) SearchCreatures(_ context.Context, query host.CreatureQuery) ([]dsa5.CreatureEntry, error) {
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.entries, nil
}

func testBridge(store *fakeStore) Bridge {
	return Bridge{
		Store:  store,
		Router: systems.NewRouter(systems.NewDefaultRegistry()),
		Locks:  NewKeyedMutex(),
		Locale: "en-US",
	}
}
