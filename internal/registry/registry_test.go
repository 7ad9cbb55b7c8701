package registry

import (
	"testing"

	"github.com/simonhull/trackmeta/internal/binary"
	"github.com/simonhull/trackmeta/internal/types"
)

// mockParser implements FormatParser for testing.
type mockParser struct {
	name string
}

func (m *mockParser) Parse(c *binary.Cursor) types.Result {
	return types.Result{OK: true, Metadata: types.TrackMetadata{Title: m.name}}
}

func TestRegisterAndGet(t *testing.T) {
	// Use a format that's unlikely to conflict with real registrations
	format := types.Format(999)
	parser := &mockParser{name: "test"}

	Register(format, parser)

	got := Get(format)
	if got == nil {
		t.Fatal("Get() returned nil for registered format")
	}

	mp, ok := got.(*mockParser)
	if !ok {
		t.Fatal("Get() returned wrong parser type")
	}
	if mp.name != "test" {
		t.Errorf("Parser name = %q, want %q", mp.name, "test")
	}
}

func TestGet_Unregistered(t *testing.T) {
	if got := Get(types.Format(998)); got != nil {
		t.Errorf("Get() = %v for unregistered format, want nil", got)
	}
}

func TestRegister_Overwrites(t *testing.T) {
	format := types.Format(997)

	Register(format, &mockParser{name: "first"})
	Register(format, ParserFunc(func(*binary.Cursor) types.Result {
		return types.Result{Metadata: types.TrackMetadata{Title: "second"}}
	}))

	res := Get(format).Parse(nil)
	if res.Metadata.Title != "second" {
		t.Errorf("Parser title = %q, want %q", res.Metadata.Title, "second")
	}
}
