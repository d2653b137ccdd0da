package contacts

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/contactdesk/internal/client/live"
	"github.com/dmitrijs2005/contactdesk/internal/client/models"
	"github.com/dmitrijs2005/contactdesk/internal/common"
	"github.com/dmitrijs2005/contactdesk/internal/logging"
)

// fakeAPI implements api.Client for reconciler tests.
type fakeAPI struct {
	ListRet []models.Contact
	ListErr error

	CreateRet models.Contact
	CreateErr error

	UpdateRet models.Contact
	UpdateErr error

	DeleteErr error

	HistoryRet []models.AuditEntry
	HistoryErr error

	LastListUser   string
	LastCreateUser string
	LastDeletedID  string
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (*models.UserIdentity, error) {
	return nil, nil
}

func (f *fakeAPI) Register(ctx context.Context, firstName, lastName, email, password string) (*models.UserIdentity, error) {
	return nil, nil
}

func (f *fakeAPI) ListContacts(ctx context.Context, userID string) ([]models.Contact, error) {
	f.LastListUser = userID
	return append([]models.Contact(nil), f.ListRet...), f.ListErr
}

func (f *fakeAPI) CreateContact(ctx context.Context, userID string, draft models.ContactDraft) (models.Contact, error) {
	f.LastCreateUser = userID
	return f.CreateRet, f.CreateErr
}

func (f *fakeAPI) UpdateContact(ctx context.Context, contact models.Contact) (models.Contact, error) {
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeAPI) DeleteContact(ctx context.Context, contactID string) error {
	f.LastDeletedID = contactID
	return f.DeleteErr
}

func (f *fakeAPI) ContactHistory(ctx context.Context, contactID string) ([]models.AuditEntry, error) {
	return f.HistoryRet, f.HistoryErr
}

func (f *fakeAPI) Token() string { return "" }

func (f *fakeAPI) SetToken(token string) {}

func (f *fakeAPI) Close() error { return nil }

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
}

func loadedReconciler(t *testing.T, api *fakeAPI) *Reconciler {
	t.Helper()
	r := NewReconciler(api, testLogger())
	require.NoError(t, r.LoadInitial(context.Background(), "u1"))
	return r
}

func ids(list []models.Contact) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.ID)
	}
	return out
}

func TestLoadInitial_ReplacesListWholesale(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1", FirstName: "Ann"}}}
	r := loadedReconciler(t, api)
	require.Equal(t, []string{"c1"}, ids(r.Contacts()))

	api.ListRet = []models.Contact{{ID: "c2"}, {ID: "c3"}}
	require.NoError(t, r.LoadInitial(context.Background(), "u1"))
	require.Equal(t, []string{"c2", "c3"}, ids(r.Contacts()))
}

func TestApplyCreate_AppendsAndRejectsDuplicates(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	require.NoError(t, r.ApplyCreate("u1", models.Contact{ID: "c1"}))
	require.NoError(t, r.ApplyCreate("u1", models.Contact{ID: "c2"}))

	err := r.ApplyCreate("u1", models.Contact{ID: "c1", FirstName: "Dup"})
	require.ErrorIs(t, err, common.ErrDuplicateID)

	// List unchanged by the rejected create.
	require.Equal(t, []string{"c1", "c2"}, ids(r.Contacts()))
	require.Equal(t, "", r.Contacts()[0].FirstName)
}

func TestApplyUpdate_InPlace_PreservesOrder(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1"}, {ID: "c2"}, {ID: "c3"}}}
	r := loadedReconciler(t, api)

	require.NoError(t, r.ApplyUpdate("u1", OriginLocal, models.Contact{ID: "c2", FirstName: "Upd"}))

	list := r.Contacts()
	require.Equal(t, []string{"c1", "c2", "c3"}, ids(list))
	require.Equal(t, "Upd", list[1].FirstName)
}

func TestApplyUpdate_Idempotent(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1"}}}
	r := loadedReconciler(t, api)

	c := models.Contact{ID: "c1", FirstName: "Ann", PhoneNumber: "555"}
	require.NoError(t, r.ApplyUpdate("u1", OriginRemote, c))
	once := r.Contacts()

	require.NoError(t, r.ApplyUpdate("u1", OriginRemote, c))
	require.Equal(t, once, r.Contacts())
}

func TestApplyUpdate_MissPolicyDependsOnOrigin(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	// Push update racing ahead of the initial fetch is accepted as a create.
	require.NoError(t, r.ApplyUpdate("u1", OriginRemote, models.Contact{ID: "c9"}))
	require.Equal(t, []string{"c9"}, ids(r.Contacts()))

	// The same miss from a direct CRUD response is an error.
	err := r.ApplyUpdate("u1", OriginLocal, models.Contact{ID: "c404"})
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Equal(t, []string{"c9"}, ids(r.Contacts()))
}

func TestApplyDelete_AbsenceIsBenign(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1"}}}
	r := loadedReconciler(t, api)

	require.NoError(t, r.ApplyDelete("u1", "c1"))
	// Echoed push event for the same delete.
	require.NoError(t, r.ApplyDelete("u1", "c1"))
	require.Empty(t, r.Contacts())
}

func TestCreateThenDelete_FinalListExcludesContact(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	require.NoError(t, r.ApplyCreate("u1", models.Contact{ID: "c1"}))
	require.NoError(t, r.ApplyDelete("u1", "c1"))
	require.Empty(t, r.Contacts())
}

func TestUniqueness_UnderMixedSequences(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	ops := []func() error{
		func() error { return r.ApplyCreate("u1", models.Contact{ID: "a"}) },
		func() error { return r.ApplyUpdate("u1", OriginRemote, models.Contact{ID: "a", FirstName: "x"}) },
		func() error { return r.ApplyCreate("u1", models.Contact{ID: "b"}) },
		func() error { return r.ApplyUpdate("u1", OriginRemote, models.Contact{ID: "b"}) },
		func() error { return r.ApplyDelete("u1", "a") },
		func() error { return r.ApplyUpdate("u1", OriginRemote, models.Contact{ID: "a"}) },
		func() error { return r.ApplyCreate("u1", models.Contact{ID: "b"}) },
	}
	for _, op := range ops {
		_ = op()
	}

	seen := map[string]bool{}
	for _, id := range ids(r.Contacts()) {
		require.False(t, seen[id], "duplicate id %s in list", id)
		seen[id] = true
	}
}

func TestStaleGuard_RejectsWrongUser(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	require.ErrorIs(t, r.ApplyCreate("u2", models.Contact{ID: "c1"}), common.ErrStaleMutation)
	require.ErrorIs(t, r.ApplyUpdate("u2", OriginRemote, models.Contact{ID: "c1"}), common.ErrStaleMutation)
	require.ErrorIs(t, r.ApplyDelete("u2", "c1"), common.ErrStaleMutation)
	require.Empty(t, r.Contacts())
}

func TestStaleGuard_RejectsAfterReset(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})
	r.Reset()

	err := r.ApplyCreate("u1", models.Contact{ID: "c1"})
	require.ErrorIs(t, err, common.ErrStaleMutation)
	require.Empty(t, r.Contacts())
}

func TestRun_AppliesPushEvents(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1", FirstName: "Ann"}}}
	r := loadedReconciler(t, api)

	events := make(chan live.Event, 4)
	var seen []live.Event
	events <- live.Event{Kind: live.EventContactUpdated, Contact: models.Contact{ID: "c1", FirstName: "Ann2"}}
	events <- live.Event{Kind: live.EventContactDeleted, Contact: models.Contact{ID: "c1"}}
	close(events)

	r.Run(context.Background(), "u1", events, func(ev live.Event) { seen = append(seen, ev) })

	require.Empty(t, r.Contacts())
	require.Len(t, seen, 2)
}

func TestRun_StaleEventsDroppedSilently(t *testing.T) {
	r := loadedReconciler(t, &fakeAPI{})

	events := make(chan live.Event, 1)
	events <- live.Event{Kind: live.EventContactUpdated, Contact: models.Contact{ID: "c1"}}
	close(events)

	notified := false
	r.Run(context.Background(), "u2", events, func(live.Event) { notified = true })

	require.Empty(t, r.Contacts())
	require.False(t, notified)
}

func TestCRUDLegs_FoldServerResultIntoList(t *testing.T) {
	api := &fakeAPI{
		CreateRet: models.Contact{ID: "c1", FirstName: "Ann"},
		UpdateRet: models.Contact{ID: "c1", FirstName: "Ann2"},
	}
	r := loadedReconciler(t, api)

	created, err := r.Create(context.Background(), models.ContactDraft{FirstName: "Ann"})
	require.NoError(t, err)
	require.Equal(t, "c1", created.ID)
	require.Equal(t, "u1", api.LastCreateUser)

	updated, err := r.Update(context.Background(), created)
	require.NoError(t, err)
	require.Equal(t, "Ann2", updated.FirstName)
	require.Equal(t, "Ann2", r.Contacts()[0].FirstName)

	require.NoError(t, r.Delete(context.Background(), "c1"))
	require.Equal(t, "c1", api.LastDeletedID)
	require.Empty(t, r.Contacts())
}

func TestCRUDLegs_RequireLogin(t *testing.T) {
	r := NewReconciler(&fakeAPI{}, testLogger())

	_, err := r.Create(context.Background(), models.ContactDraft{})
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	_, err = r.Update(context.Background(), models.Contact{ID: "c1"})
	require.ErrorIs(t, err, common.ErrNotLoggedIn)

	require.ErrorIs(t, r.Delete(context.Background(), "c1"), common.ErrNotLoggedIn)
}

func TestUpdate_ServerNotFound_PropagatesWithoutMutation(t *testing.T) {
	api := &fakeAPI{ListRet: []models.Contact{{ID: "c1"}}, UpdateErr: common.ErrNotFound}
	r := loadedReconciler(t, api)

	_, err := r.Update(context.Background(), models.Contact{ID: "c1", FirstName: "x"})
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Equal(t, "", r.Contacts()[0].FirstName)
}

func TestHistory_DoesNotTouchList(t *testing.T) {
	api := &fakeAPI{
		ListRet:    []models.Contact{{ID: "c1"}},
		HistoryRet: []models.AuditEntry{{ID: "a1", FieldName: "email"}},
	}
	r := loadedReconciler(t, api)

	history, err := r.History(context.Background(), "c1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, []string{"c1"}, ids(r.Contacts()))
}
