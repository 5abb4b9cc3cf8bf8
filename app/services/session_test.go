package services

import (
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aureajoias/aurea/app/models"
	"github.com/aureajoias/aurea/app/repositories"
	"github.com/aureajoias/aurea/pkg/auth"
	"github.com/aureajoias/aurea/pkg/event"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.Profile{},
		&models.Category{},
		&models.Product{},
		&models.ProductImage{},
		&models.BulkUploadSession{},
		&models.BulkUploadImage{},
	))
	return db
}

func waitUntil(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

func newController(t *testing.T, db *gorm.DB) (*SessionController, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	c := NewSessionController(db, bus, slog.Default())
	t.Cleanup(c.Close)
	return c, bus
}

func registerUser(t *testing.T, db *gorm.DB, email, password string, isAdmin bool) models.Profile {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	profile := models.Profile{Email: email, PasswordHash: hash, IsAdmin: isAdmin}
	require.NoError(t, repositories.NewProfileRepository(db).Create(&profile))
	return profile
}

func TestBootstrapWithoutToken(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	assert.True(t, c.Loading())
	c.Bootstrap("")
	assert.False(t, c.Loading())

	id, email := c.User()
	assert.Equal(t, uuid.Nil, id)
	assert.Empty(t, email)
	assert.Nil(t, c.Profile())
	assert.False(t, c.IsAdmin())
}

func TestBootstrapResolvesProfile(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	profile := registerUser(t, db, "ana@aureajoias.com.br", "segredo123", true)
	token, err := auth.GenerateToken(profile.ID, profile.Email, "", true)
	require.NoError(t, err)

	c.Bootstrap(token)
	waitUntil(t, func() bool { return !c.Loading() })

	resolved := c.Profile()
	require.NotNil(t, resolved)
	assert.Equal(t, profile.ID, resolved.ID)
	assert.True(t, c.IsAdmin())
}

func TestBootstrapCreatesMissingProfile(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	userID := uuid.New()
	token, err := auth.GenerateToken(userID, "novo@aureajoias.com.br", "Nova Cliente", false)
	require.NoError(t, err)

	c.Bootstrap(token)
	waitUntil(t, func() bool { return !c.Loading() })

	resolved := c.Profile()
	require.NotNil(t, resolved)
	assert.Equal(t, userID, resolved.ID)
	assert.Equal(t, "novo@aureajoias.com.br", resolved.Email)
	require.NotNil(t, resolved.FullName)
	assert.Equal(t, "Nova Cliente", *resolved.FullName)
	assert.False(t, resolved.IsAdmin)

	// The row really exists.
	stored, err := repositories.NewProfileRepository(db).FindByID(userID)
	require.NoError(t, err)
	assert.Equal(t, "novo@aureajoias.com.br", stored.Email)
}

func TestSignInSuccessAndFailure(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	registerUser(t, db, "ana@aureajoias.com.br", "segredo123", false)

	token, message, err := c.SignIn("ana@aureajoias.com.br", "segredo123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, MsgLoginOK, message)

	_, _, err = c.SignIn("ana@aureajoias.com.br", "senha-errada")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = c.SignIn("ninguem@aureajoias.com.br", "segredo123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSecondSignInReusesProfileRow(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	registerUser(t, db, "ana@aureajoias.com.br", "segredo123", false)

	_, _, err := c.SignIn("ana@aureajoias.com.br", "segredo123")
	require.NoError(t, err)
	waitUntil(t, func() bool { return c.Profile() != nil })
	first := c.Profile().ID

	_, _, err = c.SignIn("ana@aureajoias.com.br", "segredo123")
	require.NoError(t, err)
	waitUntil(t, func() bool { return c.Profile() != nil })
	assert.Equal(t, first, c.Profile().ID)

	var count int64
	db.Model(&models.Profile{}).Where("email = ?", "ana@aureajoias.com.br").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignUpThenSignOut(t *testing.T) {
	db := testDB(t)
	c, _ := newController(t, db)

	name := "Beatriz Lima"
	token, message, err := c.SignUp("bia@aureajoias.com.br", "segredo123", &name)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, MsgRegisterOK, message)

	waitUntil(t, func() bool { return c.Profile() != nil })
	assert.False(t, c.IsAdmin())

	_, _, err = c.SignUp("bia@aureajoias.com.br", "outra-senha", nil)
	assert.ErrorIs(t, err, ErrEmailTaken)

	message = c.SignOut()
	assert.Equal(t, MsgLogoutOK, message)
	waitUntil(t, func() bool { return c.Profile() == nil })

	id, _ := c.User()
	assert.Equal(t, uuid.Nil, id)
	assert.False(t, c.Loading())
}

func TestCloseStopsUpdates(t *testing.T) {
	db := testDB(t)
	bus := event.NewBus()
	c := NewSessionController(db, bus, slog.Default())
	c.Bootstrap("")
	c.Close()

	profile := registerUser(t, db, "ana@aureajoias.com.br", "segredo123", false)
	claims := &auth.Claims{UserID: profile.ID, Email: profile.Email}
	bus.Publish(TopicAuthChanged, AuthEvent{Kind: EventSignedIn, Claims: claims})

	time.Sleep(50 * time.Millisecond)
	assert.Nil(t, c.Profile())
	id, _ := c.User()
	assert.Equal(t, uuid.Nil, id)
}
