package clinic

import (
	"context"

	"vet-clinic-admin/internal/platform/fields"
)

// Remote es el backend REST. Las implementaciones devuelven errores ya
// clasificados (*Error con ErrNetwork, ErrNotFound, ErrAPIValidation o ErrServer).
type Remote interface {
	List(ctx context.Context, e Entity) ([]fields.Record, error)
	// Get devuelve ErrNotFound ante cualquier no-2xx o body vacío/null.
	Get(ctx context.Context, e Entity, id int64) (fields.Record, error)
	// Create/Update devuelven el body de respuesta si era un objeto JSON, o nil.
	Create(ctx context.Context, e Entity, payload fields.Record) (fields.Record, error)
	Update(ctx context.Context, e Entity, id int64, payload fields.Record) (fields.Record, error)
	// Delete devuelve el mensaje del servidor si hubo uno (JSON o texto plano).
	Delete(ctx context.Context, e Entity, id int64) (string, error)
}
