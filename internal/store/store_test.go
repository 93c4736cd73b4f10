package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/leapstack-labs/salesledger/internal/config"
	"github.com/leapstack-labs/salesledger/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStore builds a Store over two mocked pools.
func newTestStore(t *testing.T) (*Store, sqlmock.Sqlmock, sqlmock.Sqlmock) {
	t.Helper()

	writeDB, writeMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = writeDB.Close() })

	readDB, readMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = readDB.Close() })

	return &Store{
		write:  writeDB,
		read:   readDB,
		logger: testutil.NewTestLogger(t),
	}, writeMock, readMock
}

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.EndpointConfig
		want string
	}{
		{
			name: "full config",
			cfg: config.EndpointConfig{
				Host: "db-master", Port: 5676, Database: "ledger",
				User: "app", Password: "secret",
			},
			want: "host=db-master port=5676 dbname=ledger sslmode=disable user=app password=secret",
		},
		{
			name: "defaults fill host and port",
			cfg:  config.EndpointConfig{Database: "postgres"},
			want: "host=localhost port=5432 dbname=postgres sslmode=disable",
		},
		{
			name: "sslmode option",
			cfg: config.EndpointConfig{
				Host: "db", Port: 5432, Database: "postgres",
				Options: map[string]string{"sslmode": "require"},
			},
			want: "host=db port=5432 dbname=postgres sslmode=require",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildDSN(tt.cfg))
		})
	}
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name      string
		writeUp   bool
		readUp    bool
		wantWrite bool
		wantRead  bool
	}{
		{name: "both reachable", writeUp: true, readUp: true, wantWrite: true, wantRead: true},
		{name: "read endpoint down", writeUp: true, readUp: false, wantWrite: true, wantRead: false},
		{name: "write endpoint down", writeUp: false, readUp: true, wantWrite: false, wantRead: true},
		{name: "both down", writeUp: false, readUp: false, wantWrite: false, wantRead: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, writeMock, readMock := newTestStore(t)

			if tt.writeUp {
				writeMock.ExpectQuery("SELECT 1").
					WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
			} else {
				writeMock.ExpectQuery("SELECT 1").WillReturnError(assert.AnError)
			}
			if tt.readUp {
				readMock.ExpectQuery("SELECT 1").
					WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))
			} else {
				readMock.ExpectQuery("SELECT 1").WillReturnError(assert.AnError)
			}

			h := s.Health(context.Background())
			assert.Equal(t, tt.wantWrite, h.Write)
			assert.Equal(t, tt.wantRead, h.Read)

			assert.NoError(t, writeMock.ExpectationsWereMet())
			assert.NoError(t, readMock.ExpectationsWereMet())
		})
	}
}
