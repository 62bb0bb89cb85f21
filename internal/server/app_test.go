package server

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/arshan09/AuthenticationApp/internal/common"
	"github.com/arshan09/AuthenticationApp/internal/logging"
	"github.com/arshan09/AuthenticationApp/internal/server/config"
	"github.com/arshan09/AuthenticationApp/internal/server/notify"
	"github.com/sethvargo/go-retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_FailsFastOnMissingKeys(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.AccessTokenSecret = "a"
	c.RefreshTokenSecret = "r"

	_, err := NewApp(context.Background(), c)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingSigningKey)
}

func TestWaitForDB_RetriesUntilPing(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	mock.ExpectPing()

	var buf bytes.Buffer
	b := retry.WithMaxRetries(5, retry.NewConstant(time.Millisecond))
	require.NoError(t, waitForDB(context.Background(), db, b, logging.NewJSONLogger(&buf, "info")))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Contains(t, buf.String(), "database not ready")
}

func TestWaitForDB_GivesUp(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	for range 3 {
		mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	}

	b := retry.WithMaxRetries(2, retry.NewConstant(time.Millisecond))
	err = waitForDB(context.Background(), db, b, logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestNewNotifier_FallsBackToLog(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()

	n, err := newNotifier(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.LogNotifier{}, n)
}

func TestNewNotifier_UsesSES(t *testing.T) {
	c := &config.Config{}
	c.LoadDefaults()
	c.EmailUser = "AKIAEXAMPLE"
	c.EmailPass = "secret"

	n, err := newNotifier(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	assert.IsType(t, &notify.SESNotifier{}, n)
}
