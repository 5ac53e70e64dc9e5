// Package record holds the serialization shared by all vector store
// backends: the persisted content payload, the embedding blob codec, and
// cosine similarity. Keeping these in one place guarantees identical
// retrieval semantics across interchangeable backends.
package record

import (
	"encoding/binary"
	"encoding/json"
	"math"

	"github.com/praxis-labs/praxis-cli/internal/core/domain"
)

// Payload is the serialized entity content stored alongside the embedding.
// Domain and category live in their own columns for filtering, so they are
// not repeated here.
type Payload struct {
	ID            string   `json:"id"`
	Tags          []string `json:"tags"`
	WeakContent   string   `json:"weak_content"`
	WeakReasons   []string `json:"weak_reasons"`
	StrongContent string   `json:"strong_content"`
	StrongReasons []string `json:"strong_reasons"`
	TeachingPoint string   `json:"teaching_point"`
	WhenToApply   string   `json:"when_to_apply"`
}

// Encode serializes an example's content fields, excluding the embedding.
func Encode(e domain.ContrastExample) ([]byte, error) {
	return json.Marshal(Payload{
		ID:            e.ID,
		Tags:          e.Tags,
		WeakContent:   e.WeakContent,
		WeakReasons:   e.WeakReasons,
		StrongContent: e.StrongContent,
		StrongReasons: e.StrongReasons,
		TeachingPoint: e.TeachingPoint,
		WhenToApply:   e.WhenToApply,
	})
}

// Decode rebuilds an example from a stored payload and its column values.
func Decode(data []byte, domainName, category string) (domain.ContrastExample, error) {
	var p Payload
	if err := json.Unmarshal(data, &p); err != nil {
		return domain.ContrastExample{}, err
	}
	return domain.ContrastExample{
		ID:            p.ID,
		Domain:        domainName,
		Category:      category,
		Tags:          p.Tags,
		WeakContent:   p.WeakContent,
		WeakReasons:   p.WeakReasons,
		StrongContent: p.StrongContent,
		StrongReasons: p.StrongReasons,
		TeachingPoint: p.TeachingPoint,
		WhenToApply:   p.WhenToApply,
	}, nil
}

// Cosine returns the cosine similarity of two vectors. Zero-norm vectors
// are a degenerate input and yield 0 rather than NaN.
func Cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// EncodeVector packs a float32 vector into a little-endian byte blob.
func EncodeVector(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

// DecodeVector unpacks a little-endian byte blob into a float32 vector.
func DecodeVector(data []byte) []float32 {
	if len(data) == 0 {
		return nil
	}
	v := make([]float32, len(data)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return v
}
