package output

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	headers := []string{"name", "age"}
	rows := [][]string{
		{"alice", "30"},
		{"bob", ""},
	}

	if err := formatter.Format(headers, rows); err != nil {
		t.Fatalf("Format error = %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}

	var first map[string]string
	if err := json.Unmarshal(lines[0], &first); err != nil {
		t.Fatalf("line 1 is not valid JSON: %v", err)
	}
	if first["name"] != "alice" || first["age"] != "30" {
		t.Errorf("line 1 = %v, want name=alice age=30", first)
	}

	var second map[string]string
	if err := json.Unmarshal(lines[1], &second); err != nil {
		t.Fatalf("line 2 is not valid JSON: %v", err)
	}
	if second["age"] != "" {
		t.Errorf("absent cell should serialize as empty string, got %q", second["age"])
	}
}

func TestJSONFormatter_ShortRowPadsToHeaders(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	if err := formatter.Format([]string{"a", "b"}, [][]string{{"only"}}); err != nil {
		t.Fatalf("Format error = %v", err)
	}

	var obj map[string]string
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &obj); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if obj["a"] != "only" || obj["b"] != "" {
		t.Errorf("obj = %v, want a=only b=\"\"", obj)
	}
}

func TestJSONFormatter_DuplicateHeaders(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	headers := []string{"v", "v", "v"}
	rows := [][]string{{"1", "2", "3"}}

	if err := formatter.Format(headers, rows); err != nil {
		t.Fatalf("Format error = %v", err)
	}

	var obj map[string]string
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &obj); err != nil {
		t.Fatalf("not valid JSON: %v", err)
	}
	if len(obj) != 3 {
		t.Fatalf("got %d keys, want 3: %v", len(obj), obj)
	}
	if obj["v"] != "1" || obj["v_2"] != "2" || obj["v_3"] != "3" {
		t.Errorf("obj = %v, want v=1 v_2=2 v_3=3", obj)
	}
}

func TestJSONFormatter_NoRows(t *testing.T) {
	var buf bytes.Buffer
	formatter := NewJSONFormatter(&buf)

	if err := formatter.Format([]string{"a"}, nil); err != nil {
		t.Fatalf("Format error = %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("Format = %q, want no output", buf.String())
	}
}
