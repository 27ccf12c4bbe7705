package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rrhh-digital/legajo-api/internal/models"
)

func newEliminacionMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestEliminacionRepositoryCreateDefaultsEstado(t *testing.T) {
	db, mock, cleanup := newEliminacionMock(t)
	defer cleanup()
	repo := NewEliminacionRepository(db)

	mock.ExpectExec("INSERT INTO eliminacion_solicitudes").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	solicitud := &models.EliminacionSolicitud{
		Tipo:          models.EliminacionDocumento,
		ObjetivoID:    "d1",
		PersonaID:     "p1",
		SolicitadoPor: "u1",
	}
	require.NoError(t, repo.Create(context.Background(), solicitud))
	assert.NotEmpty(t, solicitud.ID)
	assert.Equal(t, models.EliminacionPendiente, solicitud.Estado)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEliminacionRepositoryListByEstado(t *testing.T) {
	db, mock, cleanup := newEliminacionMock(t)
	defer cleanup()
	repo := NewEliminacionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "tipo", "objetivo_id", "persona_id", "motivo", "estado", "solicitado_por", "revisado_por", "revisado_en", "nota", "created_at"}).
		AddRow("e1", models.EliminacionTitulo, "t1", "p1", nil, models.EliminacionPendiente, "u1", nil, nil, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND e.estado = $1 ORDER BY e.created_at DESC")).
		WithArgs(string(models.EliminacionPendiente)).
		WillReturnRows(rows)

	solicitudes, err := repo.List(context.Background(), models.EliminacionFilter{Estado: string(models.EliminacionPendiente)})
	require.NoError(t, err)
	require.Len(t, solicitudes, 1)
	assert.Equal(t, models.EliminacionTitulo, solicitudes[0].Tipo)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEliminacionRepositoryReview(t *testing.T) {
	db, mock, cleanup := newEliminacionMock(t)
	defer cleanup()
	repo := NewEliminacionRepository(db)

	nota := "procede"
	mock.ExpectExec(regexp.QuoteMeta("WHERE id = $5 AND estado = $6")).
		WithArgs(models.EliminacionAprobada, "rev1", sqlmock.AnyArg(), &nota, "e1", models.EliminacionPendiente).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Review(context.Background(), "e1", models.EliminacionAprobada, "rev1", &nota)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEliminacionRepositoryReviewAlreadySettled(t *testing.T) {
	db, mock, cleanup := newEliminacionMock(t)
	defer cleanup()
	repo := NewEliminacionRepository(db)

	mock.ExpectExec("UPDATE eliminacion_solicitudes").
		WithArgs(models.EliminacionRechazada, "rev1", sqlmock.AnyArg(), nil, "e1", models.EliminacionPendiente).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Review(context.Background(), "e1", models.EliminacionRechazada, "rev1", nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
