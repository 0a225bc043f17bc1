package feed

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/santiago/autovidriera/internal/model"
)

// mockResolver is a test double for the media resolver.
type mockResolver struct {
	assets    map[string][]model.MediaAsset
	delays    map[string]time.Duration
	callCount int64
}

func (m *mockResolver) Resolve(_ context.Context, hint string) []model.MediaAsset {
	atomic.AddInt64(&m.callCount, 1)
	if d, ok := m.delays[hint]; ok {
		time.Sleep(d)
	}
	return m.assets[hint]
}

func img(url string) model.MediaAsset {
	return model.MediaAsset{URL: url, Kind: model.MediaKindImage}
}

func TestNormalize_DropsRowsWithoutBrandOrModel(t *testing.T) {
	raw := "Marca,Modelo,Precio\n" +
		"Ford,,8500\n" +
		",Fiesta,8500\n" +
		"Ford,Fiesta,8500\n"

	n := NewNormalizer(&mockResolver{}, nil, 1, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if len(result.Records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(result.Records))
	}
	if result.RowsDropped != 2 {
		t.Errorf("RowsDropped = %d, want 2", result.RowsDropped)
	}
	if result.Records[0].Brand != "Ford" || result.Records[0].Model != "Fiesta" {
		t.Errorf("kept record = %+v", result.Records[0])
	}
}

func TestNormalize_MalformedCSV_ReturnsError(t *testing.T) {
	raw := "Marca,Modelo\n\"Ford,Fiesta\n" // unterminated quote

	n := NewNormalizer(&mockResolver{}, nil, 1, nil)

	if _, err := n.Normalize(context.Background(), raw); err == nil {
		t.Fatal("expected error for malformed CSV, got nil")
	}
}

func TestNormalize_FolderAliasFallback(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"canonical fotos", "fotos", "ford-fiesta", "ford-fiesta"},
		{"capitalized", "Fotos", "ford-fiesta", "ford-fiesta"},
		{"firebase header", "CarpetaFirebase", "autos/ford-fiesta", "ford-fiesta"},
		{"preserved misspelling", "CarpetaFirebas", "autos/gol-trend", "gol-trend"},
		{"generic folder", "folder", "/corsa/", "corsa"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fmt.Sprintf("Marca,Modelo,%s\nFord,Fiesta,%s\n", tt.header, tt.value)

			n := NewNormalizer(&mockResolver{}, nil, 1, nil)
			result, err := n.Normalize(context.Background(), raw)
			if err != nil {
				t.Fatalf("Normalize returned error: %v", err)
			}
			if len(result.Records) != 1 {
				t.Fatalf("len(records) = %d, want 1", len(result.Records))
			}
			if got := result.Records[0].FolderHint; got != tt.want {
				t.Errorf("FolderHint = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNormalize_EmptyHintSkipsResolver(t *testing.T) {
	raw := "Marca,Modelo\nFord,Fiesta\n"

	resolver := &mockResolver{}
	n := NewNormalizer(resolver, nil, 1, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if got := atomic.LoadInt64(&resolver.callCount); got != 0 {
		t.Errorf("resolver called %d times, want 0", got)
	}
	if len(result.Records[0].Media) != 0 {
		t.Errorf("Media = %v, want empty", result.Records[0].Media)
	}
}

func TestNormalize_PreservesFeedOrderDespiteConcurrency(t *testing.T) {
	raw := "Marca,Modelo,fotos\n" +
		"Ford,Fiesta,lento\n" +
		"Chevrolet,Corsa,rapido\n" +
		"Volkswagen,Gol,medio\n"

	resolver := &mockResolver{
		assets: map[string][]model.MediaAsset{
			"lento":  {img("u-lento")},
			"rapido": {img("u-rapido")},
			"medio":  {img("u-medio")},
		},
		delays: map[string]time.Duration{
			"lento": 50 * time.Millisecond,
			"medio": 20 * time.Millisecond,
		},
	}
	n := NewNormalizer(resolver, nil, 3, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	wantBrands := []string{"Ford", "Chevrolet", "Volkswagen"}
	wantURLs := []string{"u-lento", "u-rapido", "u-medio"}
	for i := range wantBrands {
		if result.Records[i].Brand != wantBrands[i] {
			t.Errorf("records[%d].Brand = %q, want %q", i, result.Records[i].Brand, wantBrands[i])
		}
		if len(result.Records[i].Media) != 1 || result.Records[i].Media[0].URL != wantURLs[i] {
			t.Errorf("records[%d].Media = %v, want [%s]", i, result.Records[i].Media, wantURLs[i])
		}
	}
}

func TestNormalize_ResolverReturningNothingDegradesRowOnly(t *testing.T) {
	raw := "Marca,Modelo,fotos\n" +
		"Ford,Fiesta,roto\n" +
		"Chevrolet,Corsa,sano\n"

	resolver := &mockResolver{
		assets: map[string][]model.MediaAsset{
			"sano": {img("u-sano")},
		},
	}
	n := NewNormalizer(resolver, nil, 2, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}

	if len(result.Records) != 2 {
		t.Fatalf("len(records) = %d, want 2", len(result.Records))
	}
	if len(result.Records[0].Media) != 0 {
		t.Errorf("broken row Media = %v, want empty", result.Records[0].Media)
	}
	if len(result.Records[1].Media) != 1 {
		t.Errorf("healthy row Media = %v, want 1 asset", result.Records[1].Media)
	}
}

func TestNormalize_QuotedFieldsWithDelimiters(t *testing.T) {
	raw := "Marca,Modelo,Descripción\n" +
		"Ford,Fiesta,\"Full, con GNC aprobado\"\n"

	n := NewNormalizer(&mockResolver{}, nil, 1, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got := result.Records[0].Description; got != "Full, con GNC aprobado" {
		t.Errorf("Description = %q", got)
	}
}

func TestNormalize_RaggedRowsTolerated(t *testing.T) {
	raw := "Marca,Modelo,Precio,Color\n" +
		"Ford,Fiesta\n"

	n := NewNormalizer(&mockResolver{}, nil, 1, nil)

	result, err := n.Normalize(context.Background(), raw)
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(result.Records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(result.Records))
	}
	if result.Records[0].Price != "" {
		t.Errorf("Price = %q, want empty", result.Records[0].Price)
	}
}

func TestNormalize_EmptyDocument(t *testing.T) {
	n := NewNormalizer(&mockResolver{}, nil, 1, nil)

	result, err := n.Normalize(context.Background(), "")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if len(result.Records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(result.Records))
	}
}
