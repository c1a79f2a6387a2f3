package registry

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kafune/rede-guti/internal/client"
)

// LocalIDPrefix marks device-generated record IDs. Deletion and
// write-through routing key off it; server IDs are plain UUIDs and can
// never collide with it.
const LocalIDPrefix = "pastor-"

var (
	ErrMissingFields = errors.New("Por favor, preencha o Nome, WhatsApp, Cidade e Igreja.")
	ErrInvalidPhone  = errors.New("WhatsApp inválido.")
)

// DuplicateError is returned when a creation collides with an existing
// record's normalized phone. The colliding record is attached so the
// caller can show it instead of just failing.
type DuplicateError struct {
	Existing Record
}

func (e *DuplicateError) Error() string {
	return "WhatsApp já cadastrado."
}

// IsDuplicate reports whether err is a phone collision and returns the
// record it collided with.
func IsDuplicate(err error) (Record, bool) {
	var dup *DuplicateError
	if errors.As(err, &dup) {
		return dup.Existing, true
	}
	return Record{}, false
}

// LocalStore is the device-side pastor store.
type LocalStore interface {
	Load() []Record
	Save(records []Record) error
	NewID() string
}

// Remote is the slice of the backend API the engine drives.
type Remote interface {
	ListIndications(ctx context.Context, filter client.IndicationFilter) ([]client.Indication, error)
	ListChurches(ctx context.Context) ([]client.Church, error)
	ListMunicipalities(ctx context.Context) ([]client.Municipality, error)
	CreateIndication(ctx context.Context, input client.CreateIndicationInput) (*client.Indication, error)
	CreateChurch(ctx context.Context, name string) (*client.Church, error)
	CreateMunicipality(ctx context.Context, name, stateCode string) (*client.Municipality, error)
	DeleteIndication(ctx context.Context, id string) error
}

// Session is the device session the engine invalidates on 401.
type Session interface {
	Clear() error
	UserID() string
}

// Engine reconciles the device-local pastor store with the server-side
// indication list into one merged, newest-first collection. Local
// records are authoritative in memory and written through on every
// mutation; remote records are replaced wholesale by each refresh.
type Engine struct {
	store   LocalStore
	api     Remote
	session Session

	mu             sync.Mutex
	local          []Record
	remote         []Record
	churches       []client.Church
	municipalities []client.Municipality

	// generation guards against out-of-order refreshes: a slow fetch
	// that finishes after a newer one must not clobber its result.
	generation uint64
	applied    uint64
}

func NewEngine(store LocalStore, api Remote, session Session) *Engine {
	return &Engine{
		store:   store,
		api:     api,
		session: session,
		local:   store.Load(),
	}
}

// Snapshot returns the merged collection, newest first. The slice is
// the caller's to keep.
func (e *Engine) Snapshot() []Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Merge(e.local, e.remote)
}

// Find looks a record up by ID in the merged collection.
func (e *Engine) Find(id string) (Record, bool) {
	for _, r := range e.Snapshot() {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

// Churches returns the cached server church list, filled by Refresh and
// by ensure-creates.
func (e *Engine) Churches() []client.Church {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]client.Church, len(e.churches))
	copy(out, e.churches)
	return out
}

func (e *Engine) Municipalities() []client.Municipality {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]client.Municipality, len(e.municipalities))
	copy(out, e.municipalities)
	return out
}

// Refresh refetches the server state: indications, churches and
// municipalities in parallel. An unauthorized answer clears the session
// and is returned as-is, never retried. If a newer refresh already
// applied while this one was in flight, its result is discarded.
func (e *Engine) Refresh(ctx context.Context) error {
	e.mu.Lock()
	e.generation++
	gen := e.generation
	e.mu.Unlock()

	var (
		indications    []client.Indication
		churches       []client.Church
		municipalities []client.Municipality
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		indications, err = e.api.ListIndications(gctx, client.IndicationFilter{})
		return err
	})
	g.Go(func() (err error) {
		churches, err = e.api.ListChurches(gctx)
		return err
	})
	g.Go(func() (err error) {
		municipalities, err = e.api.ListMunicipalities(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		if client.IsUnauthorized(err) {
			e.session.Clear()
		}
		return err
	}

	records := make([]Record, 0, len(indications))
	for _, in := range indications {
		records = append(records, mapIndication(in))
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if gen <= e.applied {
		return nil
	}
	e.applied = gen
	e.remote = records
	e.churches = churches
	e.municipalities = municipalities
	return nil
}

type AddSupporterInput struct {
	Name             string
	Phone            string
	Email            string
	IndicatedBy      string
	ChurchName       string
	MunicipalityName string
}

// AddSupporter creates a server-backed record: validate, normalize the
// phone, reject duplicates against the merged view, find-or-create the
// church and municipality, then create the indication and prepend it to
// the cached remote list.
func (e *Engine) AddSupporter(ctx context.Context, input AddSupporterInput) (Record, error) {
	name := strings.TrimSpace(input.Name)
	churchName := strings.TrimSpace(input.ChurchName)
	municipalityName := strings.TrimSpace(input.MunicipalityName)
	if name == "" || strings.TrimSpace(input.Phone) == "" || churchName == "" || municipalityName == "" {
		return Record{}, ErrMissingFields
	}

	normalized := NormalizePhone(input.Phone)
	if normalized == "" {
		return Record{}, ErrInvalidPhone
	}
	if existing, ok := FindByPhone(e.Snapshot(), normalized); ok {
		return Record{}, &DuplicateError{Existing: existing}
	}

	var (
		church       *client.Church
		municipality *client.Municipality
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		church, err = e.ensureChurch(gctx, churchName)
		return err
	})
	g.Go(func() (err error) {
		municipality, err = e.ensureMunicipality(gctx, municipalityName)
		return err
	})
	if err := g.Wait(); err != nil {
		return Record{}, e.checkAuth(err)
	}

	indicatedBy := strings.TrimSpace(input.IndicatedBy)
	if indicatedBy == "" {
		indicatedBy = DirectSignup
	}

	created, err := e.api.CreateIndication(ctx, client.CreateIndicationInput{
		Name:           name,
		Phone:          normalized,
		Email:          strings.TrimSpace(input.Email),
		IndicatedBy:    indicatedBy,
		ChurchID:       church.ID,
		MunicipalityID: municipality.ID,
	})
	if err != nil {
		return Record{}, e.checkAuth(err)
	}

	record := mapIndication(*created)
	e.mu.Lock()
	e.remote = append([]Record{record}, e.remote...)
	e.mu.Unlock()
	return record, nil
}

type AddPastorInput struct {
	Name             string
	Phone            string
	ChurchName       string
	MunicipalityName string
	ReferredBy       string
	Info             *PastorInfo
}

// AddPastor creates a device-only record. Nothing touches the server:
// the record is prepended to the local list and written through. The
// referrer ID, if it resolves against the merged view, supplies the
// displayed referrer name.
func (e *Engine) AddPastor(input AddPastorInput) (Record, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || strings.TrimSpace(input.ChurchName) == "" || strings.TrimSpace(input.MunicipalityName) == "" {
		return Record{}, ErrMissingFields
	}

	normalized := NormalizePhone(input.Phone)
	if normalized == "" {
		return Record{}, ErrInvalidPhone
	}
	if existing, ok := FindByPhone(e.Snapshot(), normalized); ok {
		return Record{}, &DuplicateError{Existing: existing}
	}

	indicatedBy := PastorIntake
	referredBy := strings.TrimSpace(input.ReferredBy)
	if referredBy != "" {
		if referrer, ok := e.Find(referredBy); ok {
			indicatedBy = referrer.Name
		}
	}

	createdBy := e.session.UserID()
	if createdBy == "" {
		createdBy = CreatedBySystem
	}

	record := Record{
		ID:               e.store.NewID(),
		Name:             name,
		Phone:            normalized,
		ChurchName:       strings.TrimSpace(input.ChurchName),
		MunicipalityName: strings.TrimSpace(input.MunicipalityName),
		CreatedAt:        time.Now(),
		CreatedBy:        createdBy,
		Status:           StatusActive,
		IndicatedBy:      indicatedBy,
		ReferredBy:       referredBy,
		Kind:             KindPastor,
		Pastor:           input.Info,
	}

	e.mu.Lock()
	e.local = append([]Record{record}, e.local...)
	local := make([]Record, len(e.local))
	copy(local, e.local)
	e.mu.Unlock()

	if err := e.store.Save(local); err != nil {
		return Record{}, err
	}
	return record, nil
}

// Delete routes by ID namespace: local-prefixed IDs are removed from
// the device store, everything else is deleted on the server first and
// only then dropped from the cache.
func (e *Engine) Delete(ctx context.Context, id string) error {
	if strings.HasPrefix(id, LocalIDPrefix) {
		e.mu.Lock()
		kept := e.local[:0]
		for _, r := range e.local {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		e.local = kept
		local := make([]Record, len(e.local))
		copy(local, e.local)
		e.mu.Unlock()
		return e.store.Save(local)
	}

	if err := e.api.DeleteIndication(ctx, id); err != nil {
		return e.checkAuth(err)
	}

	e.mu.Lock()
	kept := e.remote[:0]
	for _, r := range e.remote {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	e.remote = kept
	e.mu.Unlock()
	return nil
}

func (e *Engine) ensureChurch(ctx context.Context, name string) (*client.Church, error) {
	e.mu.Lock()
	for _, c := range e.churches {
		if strings.EqualFold(c.Name, name) {
			e.mu.Unlock()
			found := c
			return &found, nil
		}
	}
	e.mu.Unlock()

	created, err := e.api.CreateChurch(ctx, name)
	if err != nil {
		// Another device may have created it in the meantime.
		if client.IsConflict(err) {
			churches, listErr := e.api.ListChurches(ctx)
			if listErr != nil {
				return nil, listErr
			}
			e.setChurches(churches)
			for _, c := range churches {
				if strings.EqualFold(c.Name, name) {
					found := c
					return &found, nil
				}
			}
		}
		return nil, err
	}

	e.mu.Lock()
	e.churches = append(e.churches, *created)
	sort.Slice(e.churches, func(i, j int) bool { return e.churches[i].Name < e.churches[j].Name })
	e.mu.Unlock()
	return created, nil
}

func (e *Engine) ensureMunicipality(ctx context.Context, name string) (*client.Municipality, error) {
	e.mu.Lock()
	for _, m := range e.municipalities {
		if strings.EqualFold(m.Name, name) {
			e.mu.Unlock()
			found := m
			return &found, nil
		}
	}
	e.mu.Unlock()

	created, err := e.api.CreateMunicipality(ctx, name, "")
	if err != nil {
		if client.IsConflict(err) {
			municipalities, listErr := e.api.ListMunicipalities(ctx)
			if listErr != nil {
				return nil, listErr
			}
			e.setMunicipalities(municipalities)
			for _, m := range municipalities {
				if strings.EqualFold(m.Name, name) {
					found := m
					return &found, nil
				}
			}
		}
		return nil, err
	}

	e.mu.Lock()
	e.municipalities = append(e.municipalities, *created)
	sort.Slice(e.municipalities, func(i, j int) bool { return e.municipalities[i].Name < e.municipalities[j].Name })
	e.mu.Unlock()
	return created, nil
}

func (e *Engine) setChurches(churches []client.Church) {
	e.mu.Lock()
	e.churches = churches
	e.mu.Unlock()
}

func (e *Engine) setMunicipalities(municipalities []client.Municipality) {
	e.mu.Lock()
	e.municipalities = municipalities
	e.mu.Unlock()
}

func (e *Engine) checkAuth(err error) error {
	if client.IsUnauthorized(err) {
		e.session.Clear()
	}
	return err
}

// mapIndication converts the wire shape into the unified record. An
// unparseable timestamp becomes the zero time, which Merge sorts last.
func mapIndication(in client.Indication) Record {
	createdAt, _ := time.Parse(time.RFC3339, in.CreatedAt)

	phone := ""
	if in.Phone != nil {
		phone = *in.Phone
	}
	createdBy := in.CreatedBy.Name
	if createdBy == "" {
		createdBy = CreatedBySystem
	}

	return Record{
		ID:               in.ID,
		Name:             in.Name,
		Phone:            phone,
		ChurchName:       in.Church.Name,
		MunicipalityName: in.Municipality.Name,
		CreatedAt:        createdAt,
		CreatedBy:        createdBy,
		Status:           StatusActive,
		IndicatedBy:      in.IndicatedBy,
		Kind:             KindSupporter,
	}
}
