package profile

import (
	"reflect"
	"strings"
	"testing"

	"github.com/pablasso/fwtask/internal/registry"
	"github.com/pablasso/fwtask/internal/task"
)

func commandLines(t task.Task) []string {
	out := make([]string, 0, len(t.Commands))
	for _, c := range t.Commands {
		out = append(out, c.String())
	}
	return out
}

func taskByName(t *testing.T, tasks []task.Task, name string) task.Task {
	t.Helper()
	for _, tk := range tasks {
		if tk.Name == name {
			return tk
		}
	}
	t.Fatalf("task %q not found", name)
	return task.Task{}
}

func TestFridgeMatchesOriginalRakefile(t *testing.T) {
	p, err := Lookup("fridge")
	if err != nil {
		t.Fatalf("Lookup() returned error: %v", err)
	}
	tasks := p.Tasks()

	build := taskByName(t, tasks, "build")
	want := []string{
		"cargo build --target=thumbv7m-none-eabi --release",
		"srec_cat ./target/thumbv7m-none-eabi/release/rustyfridge -binary -o ./target/thumbv7m-none-eabi/release/rustyfridge.hex -intel",
	}
	if got := commandLines(build); !reflect.DeepEqual(got, want) {
		t.Errorf("build commands:\n got %q\nwant %q", got, want)
	}

	clean := taskByName(t, tasks, "clean")
	if got := commandLines(clean); !reflect.DeepEqual(got, []string{"cargo clean"}) {
		t.Errorf("clean commands = %q", got)
	}
	if clean.Description != "cleanup" {
		t.Errorf("clean description = %q, want cleanup", clean.Description)
	}

	for _, tk := range tasks {
		if tk.Name == "test" {
			t.Error("fridge profile should not declare a test task")
		}
	}
}

func TestBuiltinProfiles(t *testing.T) {
	tests := []struct {
		profile   string
		build     []string
		wantTest  bool
		taskNames []string
	}{
		{
			profile: "fridge-board",
			build: []string{
				"cargo build --target=thumbv7m-none-eabi --features=board --release",
				"srec_cat ./target/thumbv7m-none-eabi/release/rustyfridge -binary -o ./target/thumbv7m-none-eabi/release/rustyfridge.hex -intel",
			},
			wantTest:  true,
			taskNames: []string{"build", "test", "clean"},
		},
		{
			profile:   "bare",
			build:     []string{"cargo build --target=thumbv7m-none-eabi --release"},
			wantTest:  true,
			taskNames: []string{"build", "test", "clean"},
		},
		{
			profile:   "bare-board",
			build:     []string{"cargo build --target=thumbv7m-none-eabi --features=board --release"},
			wantTest:  true,
			taskNames: []string{"build", "test", "clean"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.profile, func(t *testing.T) {
			p, err := Lookup(tt.profile)
			if err != nil {
				t.Fatalf("Lookup() returned error: %v", err)
			}
			if err := p.Validate(); err != nil {
				t.Fatalf("Validate() returned error: %v", err)
			}

			tasks := p.Tasks()
			var gotNames []string
			for _, tk := range tasks {
				gotNames = append(gotNames, tk.Name)
			}
			if !reflect.DeepEqual(gotNames, tt.taskNames) {
				t.Errorf("tasks = %v, want %v", gotNames, tt.taskNames)
			}

			if got := commandLines(taskByName(t, tasks, "build")); !reflect.DeepEqual(got, tt.build) {
				t.Errorf("build commands:\n got %q\nwant %q", got, tt.build)
			}

			if tt.wantTest {
				testTask := taskByName(t, tasks, "test")
				want := []string{"cargo test --features=host -- --nocapture"}
				if got := commandLines(testTask); !reflect.DeepEqual(got, want) {
					t.Errorf("test commands = %q, want %q", got, want)
				}
			}
		})
	}
}

func TestBuiltinProfilesResolve(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			p, _ := Lookup(name)
			reg := registry.New(p.Tasks()...)
			if _, err := reg.Resolve(DefaultTask); err != nil {
				t.Errorf("default task should resolve, got %v", err)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	t.Run("normalizes case and whitespace", func(t *testing.T) {
		p, err := Lookup("  Bare-Board ")
		if err != nil {
			t.Fatalf("Lookup() returned error: %v", err)
		}
		if p.Name != "bare-board" {
			t.Errorf("Name = %q", p.Name)
		}
	})

	t.Run("unknown profile lists valid names", func(t *testing.T) {
		_, err := Lookup("stm32")
		if err == nil {
			t.Fatal("expected error")
		}
		for _, name := range Names() {
			if !strings.Contains(err.Error(), name) {
				t.Errorf("error %q should mention %q", err.Error(), name)
			}
		}
	})
}

func TestNames(t *testing.T) {
	want := []string{"bare", "bare-board", "fridge", "fridge-board"}
	if got := Names(); !reflect.DeepEqual(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		wantErr string
	}{
		{"missing name", Profile{Target: DefaultTarget}, "name is required"},
		{"missing target", Profile{Name: "x"}, "target triple is required"},
		{"hex without binary", Profile{Name: "x", Target: DefaultTarget, Hex: true}, "binary name is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestMultipleFeaturesAreCommaJoined(t *testing.T) {
	p := Profile{Name: "x", Target: "thumbv7em-none-eabihf", Features: []string{"board", "adc"}}
	build := taskByName(t, p.Tasks(), "build")

	want := []string{"cargo build --target=thumbv7em-none-eabihf --features=board,adc --release"}
	if got := commandLines(build); !reflect.DeepEqual(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
	if build.Description != "build with board,adc" {
		t.Errorf("Description = %q", build.Description)
	}
}
