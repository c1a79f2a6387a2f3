package registry

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kafune/rede-guti/internal/client"
)

type fakeStore struct {
	records []Record
	saves   int
	nextID  int
}

func (f *fakeStore) Load() []Record { return f.records }

func (f *fakeStore) Save(records []Record) error {
	f.records = records
	f.saves++
	return nil
}

func (f *fakeStore) NewID() string {
	f.nextID++
	return fmt.Sprintf("%s%04d", LocalIDPrefix, f.nextID)
}

type fakeSession struct {
	cleared bool
	userID  string
}

func (f *fakeSession) Clear() error   { f.cleared = true; return nil }
func (f *fakeSession) UserID() string { return f.userID }

type fakeRemote struct {
	mu sync.Mutex

	indications    []client.Indication
	churches       []client.Church
	municipalities []client.Municipality
	listErr        error

	createdIndications []client.CreateIndicationInput
	createdChurches    []string
	deleted            []string
}

func (f *fakeRemote) ListIndications(ctx context.Context, _ client.IndicationFilter) ([]client.Indication, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.indications, nil
}

func (f *fakeRemote) ListChurches(ctx context.Context) ([]client.Church, error) {
	return f.churches, nil
}

func (f *fakeRemote) ListMunicipalities(ctx context.Context) ([]client.Municipality, error) {
	return f.municipalities, nil
}

func (f *fakeRemote) CreateIndication(ctx context.Context, input client.CreateIndicationInput) (*client.Indication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdIndications = append(f.createdIndications, input)
	phone := input.Phone
	return &client.Indication{
		ID:          fmt.Sprintf("srv-%d", len(f.createdIndications)),
		Name:        input.Name,
		Phone:       &phone,
		IndicatedBy: input.IndicatedBy,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		CreatedBy:   client.User{Name: "Operador"},
	}, nil
}

func (f *fakeRemote) CreateChurch(ctx context.Context, name string) (*client.Church, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createdChurches = append(f.createdChurches, name)
	return &client.Church{ID: "church-new", Name: name}, nil
}

func (f *fakeRemote) CreateMunicipality(ctx context.Context, name, stateCode string) (*client.Municipality, error) {
	return &client.Municipality{ID: "muni-new", Name: name, StateCode: "SP"}, nil
}

func (f *fakeRemote) DeleteIndication(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func newTestEngine(remote Remote) (*Engine, *fakeStore, *fakeSession) {
	store := &fakeStore{}
	sess := &fakeSession{userID: "user-1"}
	return NewEngine(store, remote, sess), store, sess
}

func TestRefreshMapsIndications(t *testing.T) {
	phone := "5511988887777"
	remote := &fakeRemote{
		indications: []client.Indication{
			{
				ID:           "srv-1",
				Name:         "Ana",
				Phone:        &phone,
				IndicatedBy:  "Maria",
				Church:       client.Church{Name: "Igreja Central"},
				Municipality: client.Municipality{Name: "Santos"},
				CreatedBy:    client.User{Name: "Operador"},
				CreatedAt:    "2026-02-10T12:00:00.000Z",
			},
			{
				ID:        "srv-2",
				Name:      "Bia",
				CreatedAt: "not-a-timestamp",
			},
		},
	}
	engine, _, _ := newTestEngine(remote)

	require.NoError(t, engine.Refresh(context.Background()))

	records := engine.Snapshot()
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, "srv-1", first.ID)
	assert.Equal(t, KindSupporter, first.Kind)
	assert.Equal(t, StatusActive, first.Status)
	assert.Equal(t, "5511988887777", first.Phone)
	assert.Equal(t, "Igreja Central", first.ChurchName)
	assert.Equal(t, "Operador", first.CreatedBy)

	// Unparseable timestamp lands as zero time and sorts last.
	last := records[1]
	assert.Equal(t, "srv-2", last.ID)
	assert.True(t, last.CreatedAt.IsZero())
	assert.Equal(t, CreatedBySystem, last.CreatedBy)
}

func TestRefreshUnauthorizedClearsSession(t *testing.T) {
	remote := &fakeRemote{listErr: &client.APIError{Status: http.StatusUnauthorized, Message: "Unauthorized"}}
	engine, _, sess := newTestEngine(remote)

	err := engine.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.True(t, sess.cleared, "401 must clear the session")
}

// gatedRemote blocks its first indication fetch until released, so a
// newer refresh can overtake it.
type gatedRemote struct {
	fakeRemote
	gmu     sync.Mutex
	calls   int
	started chan struct{}
	gate    chan struct{}
	first   []client.Indication
	second  []client.Indication
}

func (g *gatedRemote) ListIndications(ctx context.Context, _ client.IndicationFilter) ([]client.Indication, error) {
	g.gmu.Lock()
	g.calls++
	n := g.calls
	g.gmu.Unlock()

	if n == 1 {
		close(g.started)
		<-g.gate
		return g.first, nil
	}
	return g.second, nil
}

func TestRefreshStaleResultDiscarded(t *testing.T) {
	remote := &gatedRemote{
		started: make(chan struct{}),
		gate:    make(chan struct{}),
		first:   []client.Indication{{ID: "stale", Name: "Velho", CreatedAt: "2026-01-01T00:00:00Z"}},
		second:  []client.Indication{{ID: "fresh", Name: "Novo", CreatedAt: "2026-02-01T00:00:00Z"}},
	}
	engine, _, _ := newTestEngine(remote)

	done := make(chan error, 1)
	go func() { done <- engine.Refresh(context.Background()) }()
	<-remote.started

	require.NoError(t, engine.Refresh(context.Background()))

	close(remote.gate)
	require.NoError(t, <-done)

	records := engine.Snapshot()
	require.Len(t, records, 1)
	assert.Equal(t, "fresh", records[0].ID, "the slow first fetch must not clobber the newer result")
}

func TestAddSupporterRejectsDuplicatePhone(t *testing.T) {
	phone := "5511988887777"
	remote := &fakeRemote{
		indications: []client.Indication{{ID: "srv-1", Name: "Ana", Phone: &phone, CreatedAt: "2026-02-10T12:00:00Z"}},
	}
	engine, _, _ := newTestEngine(remote)
	require.NoError(t, engine.Refresh(context.Background()))

	_, err := engine.AddSupporter(context.Background(), AddSupporterInput{
		Name:             "Outra Pessoa",
		Phone:            "(11) 98888-7777",
		ChurchName:       "Igreja",
		MunicipalityName: "Santos",
	})

	existing, ok := IsDuplicate(err)
	require.True(t, ok, "expected duplicate error, got %v", err)
	assert.Equal(t, "srv-1", existing.ID)
	assert.Empty(t, remote.createdIndications, "no server call on duplicate")
}

func TestAddSupporterCreatesAndPrepends(t *testing.T) {
	remote := &fakeRemote{
		churches:       []client.Church{{ID: "church-1", Name: "Igreja Central"}},
		municipalities: []client.Municipality{{ID: "muni-1", Name: "Santos"}},
	}
	engine, _, _ := newTestEngine(remote)
	require.NoError(t, engine.Refresh(context.Background()))

	record, err := engine.AddSupporter(context.Background(), AddSupporterInput{
		Name:             "  Carlos  ",
		Phone:            "(21) 93333-4444",
		ChurchName:       "igreja central",
		MunicipalityName: "Nova Cidade",
	})
	require.NoError(t, err)

	require.Len(t, remote.createdIndications, 1)
	input := remote.createdIndications[0]
	assert.Equal(t, "Carlos", input.Name)
	assert.Equal(t, "5521933334444", input.Phone)
	assert.Equal(t, DirectSignup, input.IndicatedBy)
	assert.Equal(t, "church-1", input.ChurchID, "existing church matched case-insensitively")
	assert.Equal(t, "muni-new", input.MunicipalityID, "missing municipality created on the fly")
	assert.Empty(t, remote.createdChurches)

	records := engine.Snapshot()
	require.NotEmpty(t, records)
	assert.Equal(t, record.ID, records[0].ID, "new record prepended to the cache")
}

func TestAddSupporterValidation(t *testing.T) {
	engine, _, _ := newTestEngine(&fakeRemote{})

	_, err := engine.AddSupporter(context.Background(), AddSupporterInput{Name: "Ana"})
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = engine.AddSupporter(context.Background(), AddSupporterInput{
		Name: "Ana", Phone: "sem numero", ChurchName: "Igreja", MunicipalityName: "Santos",
	})
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestAddPastorStoresLocally(t *testing.T) {
	phone := "5511988887777"
	remote := &fakeRemote{
		indications: []client.Indication{{ID: "srv-ref", Name: "Maria", Phone: &phone, CreatedAt: "2026-02-10T12:00:00Z"}},
	}
	engine, store, _ := newTestEngine(remote)
	require.NoError(t, engine.Refresh(context.Background()))

	record, err := engine.AddPastor(AddPastorInput{
		Name:             "Pr. José",
		Phone:            "(11) 97777-6666",
		ChurchName:       "Assembleia",
		MunicipalityName: "Guarujá",
		ReferredBy:       "srv-ref",
		Info:             &PastorInfo{Denomination: "Assembleia de Deus"},
	})
	require.NoError(t, err)

	assert.True(t, record.Kind == KindPastor)
	assert.Contains(t, record.ID, LocalIDPrefix)
	assert.Equal(t, "Maria", record.IndicatedBy, "referrer name resolved from the merged view")
	assert.Equal(t, "user-1", record.CreatedBy)
	assert.Equal(t, "5511977776666", record.Phone)

	require.Len(t, store.records, 1, "written through to the device store")
	assert.Equal(t, record.ID, store.records[0].ID)
	assert.Empty(t, remote.createdIndications, "pastors never reach the server")
}

func TestAddPastorUnknownReferrerFallsBack(t *testing.T) {
	engine, _, _ := newTestEngine(&fakeRemote{})

	record, err := engine.AddPastor(AddPastorInput{
		Name:             "Pr. João",
		Phone:            "11 96666-5555",
		ChurchName:       "Batista",
		MunicipalityName: "Santos",
		ReferredBy:       "deleted-id",
	})
	require.NoError(t, err)
	assert.Equal(t, PastorIntake, record.IndicatedBy)
	assert.Equal(t, "deleted-id", record.ReferredBy, "dangling reference is kept, only the display name falls back")
}

func TestDeleteRoutesByIDNamespace(t *testing.T) {
	phone := "5511988887777"
	remote := &fakeRemote{
		indications: []client.Indication{{ID: "srv-1", Name: "Ana", Phone: &phone, CreatedAt: "2026-02-10T12:00:00Z"}},
	}
	engine, store, _ := newTestEngine(remote)
	require.NoError(t, engine.Refresh(context.Background()))

	pastor, err := engine.AddPastor(AddPastorInput{
		Name: "Pr. José", Phone: "11 95555-4444", ChurchName: "Igreja", MunicipalityName: "Santos",
	})
	require.NoError(t, err)

	require.NoError(t, engine.Delete(context.Background(), pastor.ID))
	assert.Empty(t, store.records)
	assert.Empty(t, remote.deleted, "local delete never calls the server")

	require.NoError(t, engine.Delete(context.Background(), "srv-1"))
	assert.Equal(t, []string{"srv-1"}, remote.deleted)
	assert.Empty(t, engine.Snapshot())
}
