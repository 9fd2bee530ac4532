package search

import (
	"context"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/go-lms-api/internal/domain/repository"
	"github.com/oksasatya/go-lms-api/pkg/helpers"
)

const requestTimeout = 3 * time.Second

// Index is an Elasticsearch index searched with multi_match over Fields.
type Index struct {
	es     *elasticsearch.Client
	name   string
	fields []string
}

func NewIndex(es *elasticsearch.Client, name string, fields ...string) *Index {
	return &Index{es: es, name: name, fields: fields}
}

// Courses boosts the name over tags and body text.
func Courses(es *elasticsearch.Client, name string) *Index {
	return NewIndex(es, name, "name^3", "tags^2", "level", "description")
}

func Users(es *elasticsearch.Client, name string) *Index {
	return NewIndex(es, name, "email^2", "name")
}

func (i *Index) Index(ctx context.Context, id string, doc any) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESIndexJSON(c, i.es, i.name, id, doc)
}

func (i *Index) Delete(ctx context.Context, id string) error {
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESDelete(c, i.es, i.name, id)
}

func (i *Index) Search(ctx context.Context, q string, size int) ([]string, error) {
	if size <= 0 || size > 50 {
		size = 10
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	return helpers.ESMultiMatchIDs(c, i.es, i.name, q, i.fields, size)
}

var _ repository.SearchIndex = (*Index)(nil)
