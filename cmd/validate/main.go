package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mrazzaque/mystic-manor/pkg/worldspec"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <world.json>\n", os.Args[0])
		os.Exit(1)
	}

	filename := os.Args[1]
	validator := &WorldValidator{}

	if err := validator.validateFile(filename); err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("World file is valid!")
}

type WorldValidator struct {
	errors []string
}

func (v *WorldValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	// Validate filename format
	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("world file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidWorldFilename(nameWithoutExt) {
		return fmt.Errorf("world filename '%s' must be lowercase snake_case (e.g., my_world.json, not my-world.json or MyWorld.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var s worldspec.Spec
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&s); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateWorld(&s)

	if err := s.Validate(); err != nil {
		v.addError(err.Error())
	}

	// Building exercises the checks that only run against the live
	// graph, like doors gating exits that exist.
	if _, err := s.Build(); err != nil {
		v.addError(err.Error())
	}

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *WorldValidator) validateWorld(s *worldspec.Spec) {
	v.validateIDFormat("player start", s.Player.Start)

	for _, r := range s.Rooms {
		for direction, dst := range r.Exits {
			v.validateIDFormat(fmt.Sprintf("exit %s of room %s", direction, r.Name), dst)
		}
		for key := range r.Items {
			v.validateIDFormat(fmt.Sprintf("item in room %s", r.Name), key)
		}
	}

	for _, d := range s.Doors {
		v.validateIDFormat("door room", d.Room)
		v.validateIDFormat("door key", d.Key)
	}

	for _, n := range s.NPCs {
		v.validateIDFormat(fmt.Sprintf("room of NPC %s", n.Name), n.Room)
		for _, alias := range n.Aliases {
			v.validateIDFormat(fmt.Sprintf("alias of NPC %s", n.Name), alias)
		}
		for key := range n.Items {
			v.validateIDFormat(fmt.Sprintf("item of NPC %s", n.Name), key)
		}
	}

	for key := range s.Effects {
		v.validateIDFormat("effect item", key)
	}
}

func (v *WorldValidator) validateIDFormat(fieldName, id string) {
	if id == "" {
		return
	}

	if !isValidID(id) {
		v.addError(fmt.Sprintf("%s '%s' should be lowercase snake_case", fieldName, id))
	}
}

func (v *WorldValidator) addError(msg string) {
	v.errors = append(v.errors, "  - "+msg)
}

var (
	validIDRegex       = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
	validFilenameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*[a-z0-9]$|^[a-z]$`)
)

func isValidID(id string) bool {
	return validIDRegex.MatchString(id)
}

func isValidWorldFilename(name string) bool {
	// Allow 'x.' prefix for experimental worlds
	name = strings.TrimPrefix(name, "x.")
	return validFilenameRegex.MatchString(name)
}
