package profilestore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/client/models"
	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingRepo fails every call with err.
type failingRepo struct {
	*kv.MemoryRepository
	err error
}

func (f *failingRepo) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingRepo) Set(context.Context, string, []byte) error  { return f.err }
func (f *failingRepo) Update(context.Context, string, kv.UpdateFunc) error {
	return f.err
}
func (f *failingRepo) Iterate(context.Context, string, kv.VisitFunc) error { return f.err }

func newStore(t *testing.T, opts ...Option) (*Store, *kv.MemoryRepository) {
	t.Helper()
	repo := kv.NewMemoryRepository()
	return New(repo, logging.Nop(), opts...), repo
}

func rawValue(t *testing.T, repo kv.Repository, key string) string {
	t.Helper()
	b, err := repo.Get(context.Background(), key)
	require.NoError(t, err)
	return string(b)
}

func TestNormalizeEmail(t *testing.T) {
	for _, in := range []string{"a@x.com", " A@X.com ", "\tA@x.COM\n"} {
		got := NormalizeEmail(in)
		assert.Equal(t, "a@x.com", got)
		assert.Equal(t, got, NormalizeEmail(got))
	}
	assert.Equal(t, "user_profile_a@x.com", ProfileKey(" A@X.COM"))
	assert.Equal(t, "phone_map_+1 555", PhoneKey("+1 555"))
}

func TestRegisterAndLogin_Scenario(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	reg := models.Registration{Email: "a@x.com", Password: "pw1", FirstName: "A", LastName: "B", Role: "Student"}
	require.NoError(t, s.RegisterUser(ctx, reg))

	assert.JSONEq(t, `{"password":"pw1"}`, rawValue(t, repo, "user_auth_a@x.com"))
	assert.JSONEq(t, `{"name":"A B","role":"Student"}`, rawValue(t, repo, "user_profile_a@x.com"))

	check, err := s.ValidateUserCredentials(ctx, "A@X.COM", "pw1")
	require.NoError(t, err)
	assert.True(t, check.IsValid)
	assert.NoError(t, check.Reason)

	check, err = s.ValidateUserCredentials(ctx, "a@x.com", "wrong")
	require.NoError(t, err)
	assert.False(t, check.IsValid)
	assert.ErrorIs(t, check.Reason, common.ErrInvalidPassword)
	assert.Equal(t, "Invalid password", check.Message)

	err = s.RegisterUser(ctx, reg)
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)

	reg.Email = " A@x.com "
	require.ErrorIs(t, s.RegisterUser(ctx, reg), common.ErrUserAlreadyExists)
}

func TestRegisterUser_ProfileOnlyUserExists(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SyncSession(ctx, models.SessionUser{Email: "g@x.com", Name: "G"}))
	err := s.RegisterUser(ctx, models.Registration{Email: "g@x.com", Password: "pw"})
	require.ErrorIs(t, err, common.ErrUserAlreadyExists)
}

func TestRegisterUser_EmptyEmailAndStorageFailure(t *testing.T) {
	s, _ := newStore(t)
	require.ErrorIs(t, s.RegisterUser(context.Background(), models.Registration{Email: "  "}), common.ErrEmptyEmail)

	boom := errors.New("disk full")
	fs := New(&failingRepo{MemoryRepository: kv.NewMemoryRepository(), err: boom}, nil)
	err := fs.RegisterUser(context.Background(), models.Registration{Email: "a@x.com", Password: "pw"})
	require.ErrorIs(t, err, boom)
}

func TestValidateUserCredentials_Messages(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	check, err := s.ValidateUserCredentials(ctx, "nobody@x.com", "pw")
	require.NoError(t, err)
	assert.False(t, check.IsValid)
	assert.ErrorIs(t, check.Reason, common.ErrUserNotFound)
	assert.Equal(t, "User not found", check.Message)

	require.NoError(t, s.SaveUserProfile(ctx, "oauth@x.com", models.ProfileUpdate{Name: models.String("O")}))
	check, err = s.ValidateUserCredentials(ctx, "oauth@x.com", "pw")
	require.NoError(t, err)
	assert.ErrorIs(t, check.Reason, common.ErrNoPasswordSet)
	assert.Equal(t, "Please sign in with Google or reset your password.", check.Message)

	fs := New(&failingRepo{MemoryRepository: kv.NewMemoryRepository(), err: errors.New("io")}, nil)
	check, err = fs.ValidateUserCredentials(ctx, "a@x.com", "pw")
	require.Error(t, err)
	assert.False(t, check.IsValid)
	assert.Equal(t, "Validation error", check.Message)
}

func TestCheckUserExists(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	ok, err := s.CheckUserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.UpdateUserPassword(ctx, "A@x.com", "pw"))
	ok, err = s.CheckUserExists(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CheckUserExists(ctx, "")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUpdateUserPassword_KeepsProfile(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.RegisterUser(ctx, models.Registration{Email: "a@x.com", Password: "old", FirstName: "A", LastName: "B", Role: "Student"}))
	require.NoError(t, s.UpdateUserPassword(ctx, "a@x.com", "new"))

	assert.JSONEq(t, `{"password":"new"}`, rawValue(t, repo, "user_auth_a@x.com"))
	p, err := s.GetUserProfile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "A B", p.Name)

	check, err := s.ValidateUserCredentials(ctx, "a@x.com", "new")
	require.NoError(t, err)
	assert.True(t, check.IsValid)

	require.ErrorIs(t, s.UpdateUserPassword(ctx, "", "x"), common.ErrEmptyEmail)
}

func TestSaveUserProfile_Merge(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUserProfile(ctx, "A@x.com", models.ProfileUpdate{Name: models.String("A"), Role: models.String("Student")}))
	dark := models.ThemeDark
	require.NoError(t, s.SaveUserProfile(ctx, "a@x.com", models.ProfileUpdate{Theme: &dark}))

	p, err := s.GetUserProfile(ctx, " a@X.com")
	require.NoError(t, err)
	assert.Equal(t, &models.UserProfile{Name: "A", Role: "Student", Theme: models.ThemeDark}, p)
	assert.JSONEq(t, `{"name":"A","role":"Student","theme":"dark"}`, rawValue(t, repo, "user_profile_a@x.com"))

	theme, err := s.Theme(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeDark, theme)

	theme, err = s.Theme(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, models.ThemeLight, theme)

	require.ErrorIs(t, s.SaveUserProfile(ctx, "", models.ProfileUpdate{}), common.ErrEmptyEmail)
}

func TestSaveUserProfile_StorageFailure(t *testing.T) {
	boom := errors.New("boom")
	s := New(&failingRepo{MemoryRepository: kv.NewMemoryRepository(), err: boom}, nil)
	require.ErrorIs(t, s.SaveUserProfile(context.Background(), "a@x.com", models.ProfileUpdate{}), boom)
}

func TestGetUserProfile_Missing(t *testing.T) {
	s, _ := newStore(t)

	p, err := s.GetUserProfile(context.Background(), "nobody@x.com")
	require.NoError(t, err)
	assert.Nil(t, p)

	p, err = s.GetUserProfile(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestGetEmailByPhone(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUserProfile(ctx, "A@x.com", models.ProfileUpdate{PhoneNumber: models.String("+917569102138")}))
	assert.Equal(t, `"a@x.com"`, rawValue(t, repo, "phone_map_+917569102138"))

	email, err := s.GetEmailByPhone(ctx, "+917569102138")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	email, err = s.GetEmailByPhone(ctx, "7569102138")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	// query containing the saved number
	email, err = s.GetEmailByPhone(ctx, "00+917569102138")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", email)

	email, err = s.GetEmailByPhone(ctx, "9999999999")
	require.NoError(t, err)
	assert.Equal(t, "", email)

	email, err = s.GetEmailByPhone(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "", email)
}

func TestGetEmailByPhone_FirstMatchAndLastWriterWins(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveUserProfile(ctx, "first@x.com", models.ProfileUpdate{PhoneNumber: models.String("+15550001111")}))
	require.NoError(t, s.SaveUserProfile(ctx, "second@x.com", models.ProfileUpdate{PhoneNumber: models.String("+445550001111")}))

	email, err := s.GetEmailByPhone(ctx, "5550001111")
	require.NoError(t, err)
	assert.Equal(t, "first@x.com", email)

	// a new owner of the same number takes over the index entry
	require.NoError(t, s.SaveUserProfile(ctx, "third@x.com", models.ProfileUpdate{PhoneNumber: models.String("+15550001111")}))
	email, err = s.GetEmailByPhone(ctx, "+15550001111")
	require.NoError(t, err)
	assert.Equal(t, "third@x.com", email)

	// old numbers stay indexed after a change
	require.NoError(t, s.SaveUserProfile(ctx, "second@x.com", models.ProfileUpdate{PhoneNumber: models.String("+447000000000")}))
	email, err = s.GetEmailByPhone(ctx, "+445550001111")
	require.NoError(t, err)
	assert.Equal(t, "second@x.com", email)
}

func TestSyncSession(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SyncSession(ctx, models.SessionUser{Email: "G@x.com", Name: "G User", Image: "https://img"}))
	assert.JSONEq(t, `{"name":"G User","email":"G@x.com","image":"https://img"}`, rawValue(t, repo, "user_profile_g@x.com"))

	// later syncs without a name keep the stored one
	require.NoError(t, s.SyncSession(ctx, models.SessionUser{Email: "g@x.com"}))
	p, err := s.GetUserProfile(ctx, "g@x.com")
	require.NoError(t, err)
	assert.Equal(t, "G User", p.Name)
	assert.Equal(t, "g@x.com", p.Email)

	require.NoError(t, s.SyncSession(ctx, models.SessionUser{}))
}

func TestCreatives_RoundTripAndUpsert(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	bright := 120
	c1 := models.Creative{ID: "1", ProductName: "Soap", BrandName: "Acme", ImageData: "data:image/jpeg;base64,AA==", Date: "2024-01-01T00:00:00.000Z", Platform: "instagram", Brightness: &bright, AdTemplate: models.AdTemplateBold}
	c2 := models.Creative{ID: "2", ProductName: "Tea", Platform: "facebook"}

	require.NoError(t, s.SaveCreative(ctx, "a@x.com", c1))
	got, err := s.GetCreativeByID(ctx, "A@X.com", "1")
	require.NoError(t, err)
	require.NotNil(t, got)
	if diff := cmp.Diff(c1, *got); diff != "" {
		t.Fatalf("creative mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, s.SaveCreative(ctx, "a@x.com", c2))
	list, err := s.GetCreatives(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)

	c1.ProductName = "Soap v2"
	require.NoError(t, s.SaveCreative(ctx, "a@x.com", c1))
	list, err = s.GetCreatives(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Soap v2", list[0].ProductName)
	assert.Equal(t, "2", list[1].ID)

	missing, err := s.GetCreativeByID(ctx, "a@x.com", "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCreatives_Delete(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	for _, id := range []string{"1", "2", "3"} {
		require.NoError(t, s.SaveCreative(ctx, "a@x.com", models.Creative{ID: id}))
	}

	rest, err := s.DeleteCreative(ctx, "a@x.com", "2")
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "1", rest[0].ID)
	assert.Equal(t, "3", rest[1].ID)

	rest, err = s.DeleteCreative(ctx, "a@x.com", "missing")
	require.NoError(t, err)
	assert.Len(t, rest, 2)

	_, _ = s.DeleteCreative(ctx, "a@x.com", "1")
	rest, err = s.DeleteCreative(ctx, "a@x.com", "3")
	require.NoError(t, err)
	assert.Empty(t, rest)
	assert.NotNil(t, rest)
	assert.Equal(t, "[]", rawValue(t, repo, "myCreatives_a@x.com"))
}

func TestCreatives_EmptyEmailAndID(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.SaveCreative(ctx, "", models.Creative{ID: "1"}), common.ErrEmptyEmail)
	require.ErrorIs(t, s.SaveCreative(ctx, "a@x.com", models.Creative{}), ErrMissingCreativeID)

	list, err := s.GetCreatives(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list)

	list, err = s.DeleteCreative(ctx, "", "1")
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, repo.Len())
}

func TestCreatives_SaveFailureSurfaces(t *testing.T) {
	boom := errors.New("boom")
	s := New(&failingRepo{MemoryRepository: kv.NewMemoryRepository(), err: boom}, nil)
	require.ErrorIs(t, s.SaveCreative(context.Background(), "a@x.com", models.Creative{ID: "1"}), boom)
}

func TestAutosave(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	var d models.AutosaveDraft
	found, err := s.GetAutosave(ctx, "a@x.com", &d)
	require.NoError(t, err)
	assert.False(t, found)

	raw, err := s.GetAutosaveRaw(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, raw)

	draft := models.AutosaveDraft{ProductName: "Soap", Brightness: 90, AdTemplate: models.AdTemplateRetail}
	require.NoError(t, s.SaveAutosave(ctx, "A@x.com", draft))

	found, err = s.GetAutosave(ctx, "a@x.com", &d)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, draft, d)

	// arbitrary JSON is accepted
	require.NoError(t, s.SaveAutosave(ctx, "a@x.com", map[string]any{"custom": []int{1, 2}}))
	raw, err = s.GetAutosaveRaw(ctx, "a@x.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"custom":[1,2]}`, string(raw))

	require.NoError(t, s.SaveAutosave(ctx, "", draft))
	found, err = s.GetAutosave(ctx, "", &d)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestWelcomeFlag(t *testing.T) {
	s, repo := newStore(t)
	ctx := context.Background()

	sent, err := s.HasWelcomeEmailBeenSent(ctx, "a@x.com")
	require.NoError(t, err)
	assert.False(t, sent)

	require.NoError(t, s.SetWelcomeEmailSent(ctx, "A@x.com"))
	assert.Equal(t, "true", rawValue(t, repo, "welcome_email_sent_a@x.com"))

	sent, err = s.HasWelcomeEmailBeenSent(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, sent)

	// anything but literal true means not sent
	require.NoError(t, repo.Set(ctx, "welcome_email_sent_b@x.com", []byte(`"yes"`)))
	sent, err = s.HasWelcomeEmailBeenSent(ctx, "b@x.com")
	require.NoError(t, err)
	assert.False(t, sent)
}

func TestWeeklyUsage(t *testing.T) {
	now := time.Date(2024, 1, 7, 10, 0, 0, 0, time.UTC) // Sunday
	s, repo := newStore(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	empty, err := s.GetWeeklyUsage(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0}, empty.Data)

	s.UpdateUsageTime(ctx, "a@x.com")
	s.UpdateUsageTime(ctx, "A@x.com")
	require.NoError(t, repo.Set(ctx, "usage_stats_a@x.com", mergeUsage(t, rawValue(t, repo, "usage_stats_a@x.com"), `"2024-01-02":5,"2023-12-31":9`)))

	w, err := s.GetWeeklyUsage(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}, w.Labels)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05", "2024-01-06", "2024-01-07"}, w.Dates)
	assert.Equal(t, []int{0, 5, 0, 0, 0, 0, 2}, w.Data)

	s.ClearUsageDates(ctx, "a@x.com", w.Dates)
	assert.JSONEq(t, `{"2023-12-31":9}`, rawValue(t, repo, "usage_stats_a@x.com"))

	w, err = s.GetWeeklyUsage(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, w.Labels)
	assert.Empty(t, w.Data)
	assert.Empty(t, w.Dates)
}

func TestUsage_UsesUTCDate(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	now := time.Date(2024, 3, 10, 2, 0, 0, 0, loc) // 2024-03-09 21:00 UTC
	s, repo := newStore(t, WithClock(func() time.Time { return now }))

	s.UpdateUsageTime(context.Background(), "a@x.com")
	assert.JSONEq(t, `{"2024-03-09":1}`, rawValue(t, repo, "usage_stats_a@x.com"))
}

func TestUsage_FailuresAreSwallowed(t *testing.T) {
	s := New(&failingRepo{MemoryRepository: kv.NewMemoryRepository(), err: errors.New("boom")}, nil)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		s.UpdateUsageTime(ctx, "a@x.com")
		s.ClearUsageDates(ctx, "a@x.com", []string{"2024-01-01"})
	})
}

func mergeUsage(t *testing.T, current, extra string) []byte {
	t.Helper()
	return []byte(current[:len(current)-1] + "," + extra + "}")
}
