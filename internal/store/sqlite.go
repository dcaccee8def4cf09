package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iabetor/mim/internal/feed"
	"github.com/iabetor/mim/internal/logger"
	_ "modernc.org/sqlite"
)

const createFeedsTable = `CREATE TABLE IF NOT EXISTS feeds (
	position INTEGER PRIMARY KEY,
	id TEXT NOT NULL,
	source TEXT NOT NULL,
	category TEXT NOT NULL,
	url TEXT
)`

// SQLiteStore 把 Mim 保存在 SQLite 数据库的 feeds 表中。
// 每次 Save 在一个事务内重写整张表，position 保存原有顺序。
type SQLiteStore struct {
	path string
}

// NewSQLiteStore 创建 SQLite 存储。数据库在首次使用时创建。
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// open 打开数据库并确保表存在。
func (s *SQLiteStore) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return nil, fmt.Errorf("创建数据库目录失败: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("打开数据库失败: %w", err)
	}
	if _, err := db.Exec(createFeedsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("创建 feeds 表失败: %w", err)
	}

	logger.Debugf("[store] 数据库已打开: %s", s.path)
	return db, nil
}

func (s *SQLiteStore) Load() (*Mim, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT id, source, category, url FROM feeds ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("查询订阅失败: %w", err)
	}
	defer rows.Close()

	m := &Mim{}
	for rows.Next() {
		var (
			f                feed.Feed
			source, category string
			url              sql.NullString
		)
		if err := rows.Scan(&f.ID, &source, &category, &url); err != nil {
			return nil, fmt.Errorf("读取订阅失败: %w", err)
		}
		if f.Source, err = feed.ParseSource(source); err != nil {
			return nil, fmt.Errorf("订阅 %s: %w", f.ID, err)
		}
		if f.Category, err = feed.ParseCategory(category); err != nil {
			return nil, fmt.Errorf("订阅 %s: %w", f.ID, err)
		}
		f.URL = url.String
		m.Feeds = append(m.Feeds, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("读取订阅失败: %w", err)
	}
	return m, nil
}

func (s *SQLiteStore) Save(m *Mim) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("开启事务失败: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM feeds`); err != nil {
		return fmt.Errorf("清空订阅失败: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO feeds (position, id, source, category, url) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("准备插入语句失败: %w", err)
	}
	defer stmt.Close()

	for i, f := range m.Feeds {
		url := sql.NullString{String: f.URL, Valid: f.URL != ""}
		if _, err := stmt.Exec(i, f.ID, f.Source.Token(), f.Category.Token(), url); err != nil {
			return fmt.Errorf("保存订阅 %s 失败: %w", f.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("提交事务失败: %w", err)
	}
	return nil
}
