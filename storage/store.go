package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"metapress-import/config"
)

// StoredFile beschreibt ein abgelegtes Objekt.
type StoredFile struct {
	Key  string
	Link string
	Size int64
	// Aus dem Quellpfad abgeleiteter Dateiname; Aufrufer können ihn
	// mit dem im Export deklarierten Namen überschreiben.
	DerivedName string
}

// FileStore legt eine Quelle (lokaler Pfad oder URL) im Objektspeicher ab.
type FileStore interface {
	Store(ctx context.Context, source, mimeType string) (*StoredFile, error)
}

// CustomTransport fügt jeder Anfrage einen User-Agent-Header hinzu.
type CustomTransport struct {
	Transport http.RoundTripper
}

func (t *CustomTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	return t.Transport.RoundTrip(req)
}

// httpClient wird für alle Volltext-Downloads verwendet.
var httpClient = &http.Client{
	Timeout: 60 * time.Second,
	Transport: &CustomTransport{
		Transport: http.DefaultTransport,
	},
}

// S3FileStore implementiert FileStore gegen den Strato-S3-Bucket.
type S3FileStore struct {
	Config *config.Config
	Client *s3.Client
	Logger *zap.Logger
}

// NewS3FileStore erstellt eine neue Instanz des S3FileStore.
func NewS3FileStore(cfg *config.Config, client *s3.Client, logger *zap.Logger) *S3FileStore {
	return &S3FileStore{Config: cfg, Client: client, Logger: logger}
}

// Store liest die Quelle (lokaler Pfad hat Vorrang vor einer URL) und lädt
// sie unter einem eindeutigen Schlüssel in den Bucket.
func (s *S3FileStore) Store(ctx context.Context, source, mimeType string) (*StoredFile, error) {
	data, err := s.readSource(ctx, source)
	if err != nil {
		return nil, err
	}

	name := path.Base(strings.TrimRight(source, "/"))
	key := fmt.Sprintf("galleys/%s/%s", uuid.NewString(), name)

	link, err := UploadFile(ctx, s.Client, s.Config.StratoS3Bucket, key, data, s.Config)
	if err != nil {
		return nil, fmt.Errorf("fehler beim S3-Upload von %s: %w", source, err)
	}

	s.Logger.Info("Datei im Objektspeicher abgelegt",
		zap.String("source", source),
		zap.String("key", key),
		zap.String("mime_type", mimeType),
		zap.Int("size", len(data)))

	return &StoredFile{
		Key:         key,
		Link:        link,
		Size:        int64(len(data)),
		DerivedName: name,
	}, nil
}

func (s *S3FileStore) readSource(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return s.download(ctx, source)
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Lesen von %s: %w", source, err)
	}
	return data, nil
}

func (s *S3FileStore) download(ctx context.Context, link string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fehler beim Download von %s: %w", link, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
