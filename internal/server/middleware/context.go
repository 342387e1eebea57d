package middleware

import (
	"sync"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/rabbitmq/amqp091-go"

	"github.com/brimfrost/backend/pkg/familytree"
)

type AppUser struct {
	UserID int64
	Email  string
	Name   string
	Role   string
}

// TreeSession serializes access to the in-memory graph. The engine itself is
// lock-free; all handlers go through the embedded mutex.
type TreeSession struct {
	sync.Mutex
	Store  *familytree.Store
	Loaded bool
}

func NewTreeSession() *TreeSession {
	return &TreeSession{Store: familytree.NewStore(nil)}
}

type App struct {
	DBConn    *pgxpool.Pool
	Queue     *amqp091.Channel
	S3        *s3.Client
	Tree      *TreeSession
	JWTSecret []byte
	// Key is set only when token verification is delegated to an external
	// JWKS endpoint; otherwise tokens are HS256 against JWTSecret.
	Key *keyfunc.Keyfunc
}

type AppContext struct {
	echo.Context
	App  *App
	User *AppUser
}

func AppContextMiddleware(app *App) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cc := &AppContext{c, app, nil}
			return next(cc)
		}
	}
}
