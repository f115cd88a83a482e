// Package images es la caché local de fotos de mascotas: id de mascota =>
// data URI, guardada como un único JSON bajo una clave del kv.Store.
// El backend nunca guarda ni sirve imágenes.
package images

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"vet-clinic-admin/internal/domain/clinic"
	"vet-clinic-admin/internal/platform/logger"
	"vet-clinic-admin/internal/ports/kv"
)

const (
	StoreKey        = "mascotasImagenes"
	DefaultMaxBytes = 2 << 20
)

var (
	ErrEmpty           = errors.New("image is empty")
	ErrTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedType = errors.New("unsupported image type")
	ErrNotFound        = errors.New("image not found")
	ErrBadDataURI      = errors.New("malformed data uri")
)

var allowed = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

type Cache struct {
	mu       sync.Mutex
	store    kv.Store
	maxBytes int
	log      logger.Logger
}

func NewCache(store kv.Store, maxBytes int, log logger.Logger) *Cache {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Cache{
		store:    store,
		maxBytes: maxBytes,
		log:      log.With(map[string]any{"component": "images"}),
	}
}

func (c *Cache) MaxBytes() int { return c.maxBytes }

// Get devuelve el data URI de la mascota; ok=false si no hay imagen.
func (c *Cache) Get(ctx context.Context, petID int64) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.load(ctx)
	if err != nil {
		return "", false, err
	}
	uri, ok := m[key(petID)]
	return uri, ok, nil
}

// Set valida tipo (por contenido, no por extensión) y tamaño; nunca trunca.
func (c *Cache) Set(ctx context.Context, petID int64, data []byte) (string, error) {
	if petID <= 0 {
		return "", fmt.Errorf("images: invalid pet id %d", petID)
	}
	mime, err := c.Check(data)
	if err != nil {
		return "", err
	}

	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)

	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.load(ctx)
	if err != nil {
		return "", err
	}
	m[key(petID)] = uri
	if err := c.save(ctx, m); err != nil {
		return "", err
	}

	c.log.Info("pet image stored", map[string]any{"pet_id": petID, "mime": mime, "bytes": len(data)})
	return uri, nil
}

// Check aplica las reglas de Set sin guardar nada y devuelve el tipo detectado.
func (c *Cache) Check(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > c.maxBytes {
		return "", fmt.Errorf("%w: %d > %d bytes", ErrTooLarge, len(data), c.maxBytes)
	}
	mime := http.DetectContentType(data)
	if !allowed[mime] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mime)
	}
	return mime, nil
}

// Remove borra la entrada; no es error si no existía.
func (c *Cache) Remove(ctx context.Context, petID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, err := c.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := m[key(petID)]; !ok {
		return nil
	}
	delete(m, key(petID))
	if err := c.save(ctx, m); err != nil {
		return err
	}

	c.log.Info("pet image removed", map[string]any{"pet_id": petID})
	return nil
}

// MergeInto devuelve una copia de pets con Image completado donde haya caché.
func (c *Cache) MergeInto(ctx context.Context, pets []clinic.Pet) ([]clinic.Pet, error) {
	c.mu.Lock()
	m, err := c.load(ctx)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]clinic.Pet, len(pets))
	for i, p := range pets {
		if uri, ok := m[key(p.ID)]; ok {
			p.Image = uri
		}
		out[i] = p
	}
	return out, nil
}

func (c *Cache) load(ctx context.Context) (map[string]string, error) {
	raw, err := c.store.Get(ctx, StoreKey)
	if errors.Is(err, kv.ErrNotFound) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("images: load: %w", err)
	}

	m := map[string]string{}
	if strings.TrimSpace(string(raw)) == "" {
		return m, nil
	}
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("images: decode %s: %w", StoreKey, err)
	}
	return m, nil
}

func (c *Cache) save(ctx context.Context, m map[string]string) error {
	b, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("images: encode: %w", err)
	}
	if err := c.store.Set(ctx, StoreKey, b); err != nil {
		return fmt.Errorf("images: save: %w", err)
	}
	return nil
}

func key(petID int64) string { return strconv.FormatInt(petID, 10) }

// DecodeDataURI separa "data:<mime>;base64,<datos>".
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrBadDataURI
	}
	mime, isB64 := strings.CutSuffix(meta, ";base64")
	if !isB64 {
		return "", nil, ErrBadDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return mime, data, nil
}
