package backup

import (
	"fmt"
	"strconv"

	"smartfinance/internal/config"
	"smartfinance/internal/infrastructure/database"
)

// toolset knows the command lines that dump and reload one kind of store.
type toolset interface {
	dump(outFile string) []Command
	// restore returns nil when the store cannot be restored from a dump.
	restore(inFile string) []Command
}

func newToolset(cfg config.DatabaseConfig) (toolset, error) {
	d, err := database.ParseDialect(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch d {
	case database.Postgres:
		return postgresTools{cfg: cfg}, nil
	case database.SQLite:
		return sqliteTools{path: cfg.Path}, nil
	default:
		return mysqlTools{cfg: cfg}, nil
	}
}

type postgresTools struct {
	cfg config.DatabaseConfig
}

func (t postgresTools) conn() []string {
	return []string{"-h", t.cfg.Host, "-p", strconv.Itoa(t.cfg.Port), "-U", t.cfg.User}
}

func (t postgresTools) env() []string {
	return []string{"PGPASSWORD=" + t.cfg.Password}
}

func (t postgresTools) dump(outFile string) []Command {
	return []Command{{
		Name:       "pg_dump",
		Args:       append(t.conn(), "-F", "p", "-d", t.cfg.Name),
		Env:        t.env(),
		StdoutFile: outFile,
	}}
}

func (t postgresTools) restore(inFile string) []Command {
	terminate := fmt.Sprintf(
		"SELECT pg_terminate_backend(pid) FROM pg_stat_activity WHERE datname = '%s' AND pid <> pg_backend_pid();",
		t.cfg.Name,
	)
	return []Command{
		{Name: "psql", Args: append(t.conn(), "-d", "postgres", "-c", terminate), Env: t.env()},
		{Name: "dropdb", Args: append(t.conn(), "--if-exists", t.cfg.Name), Env: t.env()},
		{Name: "createdb", Args: append(t.conn(), t.cfg.Name), Env: t.env()},
		{Name: "psql", Args: append(t.conn(), "-v", "ON_ERROR_STOP=1", "-d", t.cfg.Name, "-f", inFile), Env: t.env()},
	}
}

type mysqlTools struct {
	cfg config.DatabaseConfig
}

func (t mysqlTools) conn() []string {
	return []string{"-h", t.cfg.Host, "-P", strconv.Itoa(t.cfg.Port), "-u", t.cfg.User}
}

func (t mysqlTools) env() []string {
	return []string{"MYSQL_PWD=" + t.cfg.Password}
}

func (t mysqlTools) dump(outFile string) []Command {
	return []Command{{
		Name:       "mysqldump",
		Args:       append(t.conn(), "--single-transaction", "--routines", t.cfg.Name),
		Env:        t.env(),
		StdoutFile: outFile,
	}}
}

func (t mysqlTools) restore(inFile string) []Command {
	recreate := fmt.Sprintf(
		"DROP DATABASE IF EXISTS `%s`; CREATE DATABASE `%s` CHARACTER SET utf8mb4;",
		t.cfg.Name, t.cfg.Name,
	)
	return []Command{
		{Name: "mysql", Args: append(t.conn(), "-e", recreate), Env: t.env()},
		{Name: "mysql", Args: append(t.conn(), t.cfg.Name), Env: t.env(), StdinFile: inFile},
	}
}

type sqliteTools struct {
	path string
}

func (t sqliteTools) dump(outFile string) []Command {
	return []Command{{Name: "sqlite3", Args: []string{t.path, ".dump"}, StdoutFile: outFile}}
}

func (t sqliteTools) restore(string) []Command {
	return nil
}
