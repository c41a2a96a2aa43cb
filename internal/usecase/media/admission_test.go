package media

import (
	"errors"
	"testing"
	"time"

	"github.com/fhuszti/catalog-media-go/internal/model"
)

func imageFile(name string, size int) model.File {
	return model.File{Name: name, ContentType: "image/png", Data: make([]byte, size), SubmittedAt: time.Unix(1700000000, 0)}
}

func names(files []model.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name)
	}
	return out
}

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAdmit_RejectsByTypeAndSize(t *testing.T) {
	files := []model.File{
		{Name: "notes.pdf", ContentType: "application/pdf", Data: []byte("%PDF")},
		imageFile("huge.png", MaxFileSize+1),
		imageFile("limit.png", MaxFileSize),
		{Name: "noext", ContentType: "", Data: []byte("x")},
	}

	adm := Admit(files, 0, 10, true)

	if !sameStrings(names(adm.Accepted), []string{"limit.png"}) {
		t.Errorf("accepted = %v; want [limit.png]", names(adm.Accepted))
	}
	if len(adm.Rejected) != 3 {
		t.Fatalf("rejected = %d; want 3", len(adm.Rejected))
	}
	wants := []struct {
		file string
		err  error
	}{
		{"notes.pdf", ErrNotImage},
		{"huge.png", ErrTooLarge},
		{"noext", ErrNotImage},
	}
	for i, w := range wants {
		r := adm.Rejected[i]
		if r.File != w.file || !errors.Is(r, w.err) {
			t.Errorf("rejected[%d] = %v; want %s / %v", i, r, w.file, w.err)
		}
	}
	if adm.Truncated {
		t.Error("rejections alone must not warn about truncation")
	}
}

func TestAdmit_TruncatesToRemainingCapacity(t *testing.T) {
	files := []model.File{imageFile("a.png", 10), imageFile("b.png", 10), imageFile("c.png", 10)}

	adm := Admit(files, 4, 5, true)

	if !sameStrings(names(adm.Accepted), []string{"a.png"}) {
		t.Errorf("accepted = %v; want [a.png]", names(adm.Accepted))
	}
	if !adm.Truncated || adm.Dropped != 2 {
		t.Errorf("truncated = %v, dropped = %d; want true, 2", adm.Truncated, adm.Dropped)
	}
}

func TestAdmit_CapacityProperty(t *testing.T) {
	for current := 0; current <= 6; current++ {
		for n := 0; n <= 8; n++ {
			files := make([]model.File, n)
			for i := range files {
				files[i] = imageFile(string(rune('a'+i))+".png", 1)
			}
			adm := Admit(files, current, 6, true)

			remaining := 6 - current
			wantAccepted := n
			if n > remaining {
				wantAccepted = remaining
			}
			if len(adm.Accepted) != wantAccepted {
				t.Errorf("current=%d n=%d: accepted %d; want %d", current, n, len(adm.Accepted), wantAccepted)
			}
			if adm.Truncated != (n > remaining) {
				t.Errorf("current=%d n=%d: truncated = %v", current, n, adm.Truncated)
			}
		}
	}
}

func TestAdmit_SingleSelectionKeepsFirstValid(t *testing.T) {
	files := []model.File{
		{Name: "doc.txt", ContentType: "text/plain", Data: []byte("x")},
		imageFile("first.png", 1),
		imageFile("second.png", 1),
	}

	adm := Admit(files, 0, 5, false)

	if !sameStrings(names(adm.Accepted), []string{"first.png"}) {
		t.Errorf("accepted = %v; want [first.png]", names(adm.Accepted))
	}
	if adm.Truncated {
		t.Error("single selection should not warn about truncation")
	}
	if len(adm.Rejected) != 1 {
		t.Errorf("rejected = %d; want 1", len(adm.Rejected))
	}
}

func TestAdmit_SingleSelectionWithoutCapacity(t *testing.T) {
	adm := Admit([]model.File{imageFile("a.png", 1)}, 3, 3, false)
	if len(adm.Accepted) != 0 || !adm.Truncated || adm.Dropped != 1 {
		t.Errorf("admission = %+v; want nothing accepted and one truncation", adm)
	}
}

func TestAdmit_DoesNotMutateInput(t *testing.T) {
	files := []model.File{imageFile("a.png", 1), imageFile("b.png", 1)}
	_ = Admit(files, 0, 1, true)
	if !sameStrings(names(files), []string{"a.png", "b.png"}) {
		t.Errorf("input mutated: %v", names(files))
	}
}

func TestAdmit_RulesFollowPackageConstants(t *testing.T) {
	tests := []struct {
		name    string
		file    model.File
		wantErr error
	}{
		{"exactly MaxFileSize", imageFile("max.png", MaxFileSize), nil},
		{"one byte over", imageFile("over.png", MaxFileSize+1), ErrTooLarge},
		{"any image subtype", model.File{Name: "a.avif", ContentType: "image/avif", Data: []byte("x")}, nil},
		{"marker without slash", model.File{Name: "a.bin", ContentType: "imagex", Data: []byte("x")}, ErrNotImage},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			adm := Admit([]model.File{tc.file}, 0, 10, true)
			if tc.wantErr == nil {
				if len(adm.Accepted) != 1 || len(adm.Rejected) != 0 {
					t.Fatalf("accepted = %v, rejected = %v; want accepted", names(adm.Accepted), adm.Rejected)
				}
				if !IsImage(tc.file.ContentType) {
					t.Errorf("IsImage(%q) = false for an admitted file", tc.file.ContentType)
				}
				return
			}
			if len(adm.Rejected) != 1 || !errors.Is(adm.Rejected[0], tc.wantErr) {
				t.Fatalf("rejected = %v; want %v", adm.Rejected, tc.wantErr)
			}
		})
	}
}
