package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ignatzorin/seeforge-backend/internal/config"
	"github.com/ignatzorin/seeforge-backend/internal/db"
	"github.com/ignatzorin/seeforge-backend/internal/logger"
	"github.com/ignatzorin/seeforge-backend/internal/models"
)

// Ошибки уровня репозитория.
var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrTemplateNotFound     = errors.New("template not found")
	ErrPaymentOrderNotFound = errors.New("payment order not found")
)

// Mode режим хранилища, выбирается один раз при старте.
type Mode string

const (
	ModeMemory   Mode = "memory"
	ModePostgres Mode = "postgres"
	ModeMongo    Mode = "mongo"
)

// ProjectRepository хранилище проектов. Все операции, кроме ListAll, ограничены владельцем.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) (*models.Project, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Project, error)
	ListByUser(ctx context.Context, userID string) ([]models.Project, error)
	ListAll(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, id, userID string, patch models.ProjectPatch) (*models.Project, error)
	Delete(ctx context.Context, id, userID string) error
}

// TemplateRepository глобальный каталог шаблонов.
type TemplateRepository interface {
	Create(ctx context.Context, tpl *models.Template) (*models.Template, error)
	Get(ctx context.Context, id string) (*models.Template, error)
	List(ctx context.Context) ([]models.Template, error)
	Update(ctx context.Context, id string, patch models.TemplatePatch) (*models.Template, error)
	Delete(ctx context.Context, id string) error
}

// Store объединяет репозитории выбранного режима.
type Store struct {
	Projects  ProjectRepository
	Templates TemplateRepository

	mode  Mode
	ping  func(ctx context.Context) error
	close func() error
}

// NewMemoryStore создаёт демо хранилище с четырьмя шаблонами и без проектов.
func NewMemoryStore() *Store {
	return &Store{
		Projects:  NewMemoryProjectRepository(),
		Templates: NewMemoryTemplateRepository(DemoTemplates()),
		mode:      ModeMemory,
	}
}

// NewPostgresStore создаёт хранилище поверх готового подключения.
func NewPostgresStore(conn *sqlx.DB) *Store {
	return &Store{
		Projects:  NewProjectRepository(conn),
		Templates: NewTemplateRepository(conn),
		mode:      ModePostgres,
		ping:      conn.PingContext,
		close:     conn.Close,
	}
}

// NewMongoStore создаёт хранилище поверх клиента MongoDB.
func NewMongoStore(client *mongo.Client, dbName string) *Store {
	database := client.Database(dbName)
	return &Store{
		Projects:  NewMongoProjectRepository(database.Collection("projects")),
		Templates: NewMongoTemplateRepository(database.Collection("templates")),
		mode:      ModeMongo,
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(ctx)
		},
	}
}

// Open выбирает режим по DATABASE_URL. При пустом URL или ошибке подключения
// возвращается демо хранилище в памяти, ошибка только логируется.
func Open(ctx context.Context, cfg *config.Config) *Store {
	log := logger.WithComponent("store")

	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL не задан, работаем в демо режиме")
		return NewMemoryStore()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	switch {
	case cfg.UsesPostgres():
		conn, err := db.NewPostgres(connectCtx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("PostgreSQL недоступен, переключаемся в демо режим")
			return NewMemoryStore()
		}
		migrations, err := db.Migrations(cfg.MigrationsPath)
		if err == nil {
			err = db.RunMigrations(connectCtx, conn, migrations)
		}
		if err != nil {
			_ = conn.Close()
			log.WithError(err).Warn("миграции не применены, переключаемся в демо режим")
			return NewMemoryStore()
		}
		log.Info("хранилище: PostgreSQL")
		return NewPostgresStore(conn)

	case cfg.UsesMongo():
		client, err := db.NewMongo(connectCtx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Warn("MongoDB недоступна, переключаемся в демо режим")
			return NewMemoryStore()
		}
		log.WithField("db", cfg.DBName).Info("хранилище: MongoDB")
		return NewMongoStore(client, cfg.DBName)

	default:
		log.WithField("url_scheme", schemeOf(cfg.DatabaseURL)).Warn("неизвестная схема DATABASE_URL, работаем в демо режиме")
		return NewMemoryStore()
	}
}

// Mode возвращает выбранный режим.
func (s *Store) Mode() Mode {
	return s.mode
}

// Ping проверяет доступность базы. В демо режиме всегда успешен.
func (s *Store) Ping(ctx context.Context) error {
	if s.ping == nil {
		return nil
	}
	return s.ping(ctx)
}

// Close закрывает подключение к базе.
func (s *Store) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

func schemeOf(url string) string {
	for i := 0; i < len(url); i++ {
		if url[i] == ':' {
			return url[:i]
		}
	}
	return ""
}
