package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"canteen-storefront/internal/domain"
	"github.com/rs/zerolog"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product, position int) (*domain.Product, error)
}

// CSVImporter reads menu CSV files and inserts/updates products.
//
// Expected columns: id,name,category,image,description,variety,price.
// A row with an empty id adds another variety to the product above it.
type CSVImporter struct {
	reader      io.Reader
	productRepo ProductWriter
	logger      zerolog.Logger
}

func NewCSVImporter(r io.Reader, repo ProductWriter, logger zerolog.Logger) *CSVImporter {
	return &CSVImporter{
		reader:      r,
		productRepo: repo,
		logger:      logger,
	}
}

// Run parses the menu and upserts every product in file order.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	products, err := ParseMenu(i.reader)
	if err != nil {
		return 0, err
	}
	imported := 0
	for pos, p := range products {
		if _, err := i.productRepo.Upsert(ctx, p, pos); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", p.ID, err)
		}
		imported++
		i.logger.Debug().Str("product_id", p.ID).Int("varieties", len(p.Varieties)).Msg("imported product")
	}
	return imported, nil
}

type csvRow struct {
	line        int
	ID          string
	Name        string
	Category    string
	Image       string
	Description string
	Variety     string
	Price       string
}

// ParseMenu reads a menu CSV into products.
func ParseMenu(r io.Reader) ([]domain.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows may have trailing commas
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	for _, required := range []string{"id", "name", "category", "price"} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("missing column %q", required)
		}
	}

	var (
		products []domain.Product
		current  *domain.Product
		line     = 1
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		row := parseRow(record, index, line)
		if row == nil {
			continue
		}
		price, err := parsePrice(row.Price)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", row.line, err)
		}
		variety := domain.Variety{Name: row.Variety, Price: price}

		if row.ID != "" {
			if current != nil {
				products = append(products, *current)
			}
			if row.Name == "" || row.Category == "" {
				return nil, fmt.Errorf("line %d: product %q is missing name or category", row.line, row.ID)
			}
			current = &domain.Product{
				ID:          row.ID,
				Name:        row.Name,
				Category:    row.Category,
				Image:       row.Image,
				Description: row.Description,
				Varieties:   []domain.Variety{variety},
			}
			continue
		}

		// Continuation rows (varieties) belong to the current product.
		if current == nil {
			return nil, fmt.Errorf("line %d: variety row before any product", row.line)
		}
		if _, dup := current.Variety(row.Variety); dup && row.Variety != "" {
			return nil, fmt.Errorf("line %d: duplicate variety %q for %q", row.line, row.Variety, current.ID)
		}
		current.Varieties = append(current.Varieties, variety)
	}
	if current != nil {
		products = append(products, *current)
	}
	return products, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int, line int) *csvRow {
	row := &csvRow{
		line:        line,
		ID:          pick(record, index, "id"),
		Name:        pick(record, index, "name"),
		Category:    pick(record, index, "category"),
		Image:       pick(record, index, "image"),
		Description: pick(record, index, "description"),
		Variety:     pick(record, index, "variety"),
		Price:       pick(record, index, "price"),
	}
	if row.ID == "" && row.Variety == "" && row.Price == "" {
		return nil
	}
	return row
}

func parsePrice(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("price is required")
	}
	price, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid price %q", raw)
	}
	if price < 0 {
		return 0, fmt.Errorf("negative price %q", raw)
	}
	return price, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
