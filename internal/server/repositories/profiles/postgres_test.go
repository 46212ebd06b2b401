package profiles

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/devconnector/internal/common"
	"github.com/dmitrijs2005/devconnector/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepoWithMock(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewPostgresRepository(db), mock, db
}

var profileCols = []string{"id", "user_id", "name", "avatar", "company", "website", "location",
	"status", "skills", "bio", "githubusername",
	"youtube", "twitter", "facebook", "linkedin", "instagram", "created_at", "updated_at"}

const (
	selectByUserQ = `(?s)^SELECT\s+p\.id,.*FROM\s+profiles\s+p\s+JOIN\s+users\s+u\s+ON\s+u\.id\s*=\s*p\.user_id\s+WHERE\s+p\.user_id\s*=\s*\$1$`
	selectAllQ    = `(?s)^SELECT\s+p\.id,.*FROM\s+profiles\s+p\s+JOIN\s+users.*ORDER\s+BY\s+p\.created_at$`
	experienceQ   = `(?s)^SELECT\s+id,\s*title,.*FROM\s+profile_experience\s+WHERE\s+profile_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`
	educationQ    = `(?s)^SELECT\s+id,\s*school,.*FROM\s+profile_education\s+WHERE\s+profile_id\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`
)

func profileRow(id, userID string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(profileCols).AddRow(id, userID, "Alice", "//a", "ACME", "", "Riga",
		"Developer", "go, sql,,", "", "alice", "", "", "", "", "", now, now)
}

func TestGetByUserID_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(selectByUserQ).WithArgs("u-1").WillReturnRows(profileRow("p-1", "u-1"))
	mock.ExpectQuery(experienceQ).WithArgs("p-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "title", "company", "location", "from_date", "to_date", "current", "description"}).
			AddRow("e-2", "Lead", "ACME", "", from, nil, true, "").
			AddRow("e-1", "Dev", "Foo", "", from, to, false, ""))
	mock.ExpectQuery(educationQ).WithArgs("p-1").WillReturnRows(
		sqlmock.NewRows([]string{"id", "school", "degree", "fieldofstudy", "from_date", "to_date", "current", "description"}))

	p, err := repo.GetByUserID(context.Background(), "u-1")
	require.NoError(t, err)

	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "u-1", p.OwnerID())
	assert.Equal(t, "Alice", p.User.Name)
	assert.Equal(t, []string{"go", "sql"}, p.Skills)
	require.Len(t, p.Experience, 2)
	assert.Nil(t, p.Experience[0].To)
	require.NotNil(t, p.Experience[1].To)
	assert.True(t, p.Experience[1].To.Equal(to))
	assert.Empty(t, p.Education)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByUserID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByUserQ).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUserID(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestGetByUserID_SubListError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(selectByUserQ).WithArgs("u-1").WillReturnRows(profileRow("p-1", "u-1"))
	mock.ExpectQuery(experienceQ).WithArgs("p-1").WillReturnError(errors.New("db down"))

	_, err := repo.GetByUserID(context.Background(), "u-1")
	if err == nil || !regexp.MustCompile(`db error: .*db down`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestList(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows(profileCols).
		AddRow("p-1", "u-1", "Alice", "", "", "", "", "Dev", "go", "", "", "", "", "", "", "", now, now).
		AddRow("p-2", "u-2", "Bob", "", "", "", "", "Student", "", "", "", "", "", "", "", "", now, now)
	mock.ExpectQuery(selectAllQ).WillReturnRows(rows)

	emptyExp := []string{"id", "title", "company", "location", "from_date", "to_date", "current", "description"}
	emptyEdu := []string{"id", "school", "degree", "fieldofstudy", "from_date", "to_date", "current", "description"}
	for _, id := range []string{"p-1", "p-2"} {
		mock.ExpectQuery(experienceQ).WithArgs(id).WillReturnRows(sqlmock.NewRows(emptyExp))
		mock.ExpectQuery(educationQ).WithArgs(id).WillReturnRows(sqlmock.NewRows(emptyEdu))
	}

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Bob", list[1].User.Name)
	assert.Equal(t, []string{}, list[1].Skills)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+profiles\s*\(user_id,.*ON\s+CONFLICT\s*\(user_id\)\s*DO\s+UPDATE\s+SET.*RETURNING\s+id,\s*created_at,\s*updated_at$`
	now := time.Now()
	mock.ExpectQuery(q).
		WithArgs("u-1", "ACME", "", "", "Developer", "go,sql", "", "", "", "", "", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow("p-1", now, now))

	p := &models.Profile{User: models.ProfileUser{ID: "u-1"}, Company: "ACME", Status: "Developer", Skills: []string{" go", "sql "}}
	got, err := repo.Upsert(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, "p-1", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByUserID(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+profiles\s+WHERE\s+user_id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs("u-1").WillReturnResult(sqlmock.NewResult(0, 0))

	// deleting an absent profile is not an error
	assert.NoError(t, repo.DeleteByUserID(context.Background(), "u-1"))
}

func TestAddExperience(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+profile_experience\s*\(.*\)\s*VALUES.*RETURNING\s+id$`
	from := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs("p-1", "Dev", "ACME", "", from, sqlmock.AnyArg(), true, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("e-1"))

	e, err := repo.AddExperience(context.Background(), "p-1", &models.Experience{Title: "Dev", Company: "ACME", From: from, Current: true})
	require.NoError(t, err)
	assert.Equal(t, "e-1", e.ID)
}

func TestDeleteExperience(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^DELETE\s+FROM\s+profile_experience\s+WHERE\s+profile_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2$`
	mock.ExpectExec(q).WithArgs("p-1", "e-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("p-1", "e-9").WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.DeleteExperience(context.Background(), "p-1", "e-1"))
	assert.ErrorIs(t, repo.DeleteExperience(context.Background(), "p-1", "e-9"), common.ErrorNotFound)
}

func TestAddAndDeleteEducation(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	ins := `(?s)^INSERT\s+INTO\s+profile_education\s*\(.*\)\s*VALUES.*RETURNING\s+id$`
	del := `(?s)^DELETE\s+FROM\s+profile_education\s+WHERE\s+profile_id\s*=\s*\$1\s+AND\s+id\s*=\s*\$2$`
	from := time.Date(2015, 9, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(ins).
		WithArgs("p-1", "MIT", "BSc", "CS", from, sqlmock.AnyArg(), false, "").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("ed-1"))
	mock.ExpectExec(del).WithArgs("p-1", "ed-1").WillReturnError(errors.New("db err"))

	e, err := repo.AddEducation(context.Background(), "p-1", &models.Education{School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from})
	require.NoError(t, err)
	assert.Equal(t, "ed-1", e.ID)

	err = repo.DeleteEducation(context.Background(), "p-1", "ed-1")
	if err == nil || !regexp.MustCompile(`db error: .*db err`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped db error, got %v", err)
	}
}

func TestSkills(t *testing.T) {
	assert.Equal(t, "go,sql", JoinSkills([]string{" go ", "", "sql"}))
	assert.Equal(t, []string{"go", "sql"}, SplitSkills(" go , sql,"))
	assert.Equal(t, []string{}, SplitSkills(""))
}
