package queue

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/brimfrost/backend/internal/db"
	"github.com/brimfrost/backend/internal/storage"
	"github.com/brimfrost/backend/internal/util"
	"github.com/brimfrost/backend/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/errgroup"
)

// MediaMirrorItem is one remote file to re-home.
type MediaMirrorItem struct {
	MediaID int64  `json:"media_id"`
	URL     string `json:"url"`
	Type    string `json:"type"`
}

// MediaMirrorMsg is the media_queue payload: all pending mirrors for one
// person, downloaded in parallel by the worker.
type MediaMirrorMsg struct {
	PersonID int64             `json:"person_id"`
	Items    []MediaMirrorItem `json:"items"`
}

const (
	downloadTries   = 3
	downloadTimeout = 2 * time.Minute
	maxParallel     = 4
)

// ProcessMediaMirror downloads each item and stores it in the bucket,
// then records the object key on the media row. A row that was deleted or
// mirrored while the job sat in the queue is skipped. Any failed item fails
// the whole message so the retry path re-runs it; already mirrored items are
// skipped on the second pass.
func ProcessMediaMirror(ctx context.Context, s3Client *s3.Client, conn *pgxpool.Pool, body []byte) error {
	var msg MediaMirrorMsg
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("invalid media mirror message: %w", err)
	}
	if len(msg.Items) == 0 {
		return nil
	}

	q := db.New(conn)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallel)

	for _, item := range msg.Items {
		g.Go(func() error {
			media, err := q.GetMedia(ctx, item.MediaID)
			if err != nil {
				logger.Warn("[Media] Row gone, skipping mirror", "media_id", item.MediaID)
				return nil
			}
			if media.FileKey != nil {
				return nil
			}

			data, err := util.RetryWithContext(ctx, downloadTries, func(ctx context.Context) ([]byte, error) {
				return download(ctx, item.URL)
			})
			if err != nil {
				return fmt.Errorf("download %s: %w", item.URL, err)
			}

			key, err := storage.PutFile(
				ctx,
				s3Client,
				fmt.Sprintf("persons/%d/media", msg.PersonID),
				objectName(item.URL),
				gonanoid.Must(),
				bytes.NewReader(data),
			)
			if err != nil {
				return fmt.Errorf("store media %d: %w", item.MediaID, err)
			}

			if err := q.SetMediaFileKey(ctx, db.SetMediaFileKeyParams{ID: item.MediaID, FileKey: key}); err != nil {
				return fmt.Errorf("record file key for media %d: %w", item.MediaID, err)
			}
			logger.Info("[Media] Mirrored", "media_id", item.MediaID, "key", key)
			return nil
		})
	}
	return g.Wait()
}

// EnqueuePendingMirrors republishes jobs for remote media rows that never
// got mirrored, grouped per person. Run at worker startup so rows whose
// original job was lost are picked up again.
func EnqueuePendingMirrors(ctx context.Context, ch *amqp091.Channel, conn *pgxpool.Pool) error {
	rows, err := db.New(conn).ListUnmirroredMedia(ctx)
	if err != nil {
		return fmt.Errorf("failed to list unmirrored media: %w", err)
	}
	if len(rows) == 0 {
		logger.Debug("[Media] No pending mirrors")
		return nil
	}

	byPerson := map[int64][]MediaMirrorItem{}
	order := []int64{}
	for _, m := range rows {
		if _, seen := byPerson[m.PersonID]; !seen {
			order = append(order, m.PersonID)
		}
		byPerson[m.PersonID] = append(byPerson[m.PersonID], MediaMirrorItem{
			MediaID: m.ID,
			URL:     m.URL,
			Type:    m.Type,
		})
	}

	for _, personID := range order {
		msg := MediaMirrorMsg{PersonID: personID, Items: byPerson[personID]}
		body, err := json.Marshal(msg)
		if err != nil {
			return err
		}
		if err := PublishFIFO(ch, MediaQueue, body); err != nil {
			return fmt.Errorf("failed to republish mirror job for person %d: %w", personID, err)
		}
	}
	logger.Info("[Media] Republished pending mirrors", "persons", len(order), "items", len(rows))
	return nil
}

func download(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, downloadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// objectName extracts a file name from the source URL so the stored object
// keeps a usable extension.
func objectName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || path.Base(u.Path) == "/" || path.Base(u.Path) == "." {
		return "file"
	}
	return path.Base(u.Path)
}
