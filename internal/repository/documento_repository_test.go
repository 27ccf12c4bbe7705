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

func newDocumentoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func documentoRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "persona_id", "tipo_doc", "id_archivo", "estado_verificacion", "vigente", "observacion", "creado_en", "updated_at"})
}

func TestDocumentoRepositoryListByPersona(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	rows := documentoRows().
		AddRow("d1", "p1", models.DocDNI, nil, models.VerificacionPendiente, true, "", time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM persona_documentos WHERE persona_id = $1 ORDER BY creado_en DESC")).
		WithArgs("p1").
		WillReturnRows(rows)

	documentos, err := repo.ListByPersona(context.Background(), models.DocumentoFilter{PersonaID: "p1"})
	require.NoError(t, err)
	require.Len(t, documentos, 1)
	assert.Equal(t, models.DocDNI, documentos[0].TipoDoc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentoRepositoryListByPersonaWithEstado(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE persona_id = $1 AND estado_verificacion = $2")).
		WithArgs("p1", string(models.VerificacionRechazado)).
		WillReturnRows(documentoRows())

	documentos, err := repo.ListByPersona(context.Background(), models.DocumentoFilter{PersonaID: "p1", Estado: string(models.VerificacionRechazado)})
	require.NoError(t, err)
	assert.Empty(t, documentos)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentoRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	mock.ExpectExec("INSERT INTO persona_documentos").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	documento := &models.PersonaDocumento{PersonaID: "p1", TipoDoc: models.DocCUIL, Estado: models.VerificacionPendiente, Vigente: true}
	err := repo.Create(context.Background(), documento)
	require.NoError(t, err)
	assert.NotEmpty(t, documento.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentoRepositoryUpdateEstado(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE persona_documentos SET estado_verificacion = $2, observacion = $3, updated_at = $4 WHERE id = $1")).
		WithArgs("d1", models.VerificacionRechazado, "ilegible", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateEstado(context.Background(), "d1", models.VerificacionRechazado, "ilegible")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentoRepositoryUpdateEstadoMissing(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	mock.ExpectExec("UPDATE persona_documentos SET estado_verificacion").
		WithArgs("missing", models.VerificacionAprobado, "", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateEstado(context.Background(), "missing", models.VerificacionAprobado, "")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentoRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newDocumentoMock(t)
	defer cleanup()
	repo := NewDocumentoRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM persona_documentos WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
