package scene

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-voxel-raytracer/pkg/core"
	"github.com/df07/go-voxel-raytracer/pkg/loaders"
	"github.com/df07/go-voxel-raytracer/pkg/material"
)

const builtinGroup = "Built-in Scenes"

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Scene name
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "world"
	Dir         string `json:"dir"`         // Layer directory (world type only)
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

// BuiltinScenes lists the scenes that need no files on disk
func BuiltinScenes() []SceneInfo {
	return []SceneInfo{
		{
			ID:          "cube",
			Name:        "Cube",
			DisplayName: "Cube",
			Description: "Single grass block on the floor",
			Group:       builtinGroup,
			Type:        "builtin",
		},
		{
			ID:          "layers",
			Name:        "Island",
			DisplayName: "Island",
			Description: "Layered island with a pond and a tree",
			Group:       builtinGroup,
			Type:        "builtin",
		},
	}
}

// ListWorlds scans dir for subdirectories holding layer files. A missing
// dir yields an empty list.
func ListWorlds(dir string) ([]SceneInfo, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) || dir == "" {
		return []SceneInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan worlds directory: %w", err)
	}

	first := loaders.DefaultLayerOptions().LayerFile(0)
	worlds := []SceneInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		worldDir := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(filepath.Join(worldDir, first)); err != nil {
			continue
		}
		info, err := ParseWorldMetadata(worldDir)
		if err != nil {
			// Log warning but continue processing other worlds
			fmt.Printf("Warning: failed to parse metadata for %s: %v\n", worldDir, err)
			continue
		}
		worlds = append(worlds, info)
	}

	// Sort worlds by display name
	sort.Slice(worlds, func(i, j int) bool {
		return worlds[i].DisplayName < worlds[j].DisplayName
	})

	return worlds, nil
}

// ParseWorldMetadata reads the comment header of a world's first layer:
//
//	# World: Island
//	# Description: Small grass island
//	# Group: My Worlds
func ParseWorldMetadata(worldDir string) (SceneInfo, error) {
	base := filepath.Base(worldDir)
	info := SceneInfo{
		ID:          "world:" + base,
		Name:        titleCase(base),
		DisplayName: titleCase(base),
		Group:       "Worlds",
		Type:        "world",
		Dir:         worldDir,
	}

	file, err := os.Open(filepath.Join(worldDir, loaders.DefaultLayerOptions().LayerFile(0)))
	if err != nil {
		// If we can't read the file, return with fallback values
		return info, nil
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Stop parsing at first non-comment line
		if !strings.HasPrefix(line, "#") {
			break
		}

		content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
		if value, ok := strings.CutPrefix(content, "World:"); ok {
			if value = strings.TrimSpace(value); value != "" {
				info.Name = value
			}
		} else if value, ok := strings.CutPrefix(content, "Description:"); ok {
			info.Description = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(content, "Group:"); ok {
			if value = strings.TrimSpace(value); value != "" {
				info.Group = value
			}
		}
	}
	info.DisplayName = info.Name

	return info, scanner.Err()
}

// ListAllScenes returns built-in scenes and the worlds found in worldsDir,
// grouped by category
func ListAllScenes(worldsDir string) (ScenesResponse, error) {
	var response ScenesResponse

	worlds, err := ListWorlds(worldsDir)
	if err != nil {
		return response, fmt.Errorf("failed to list worlds: %w", err)
	}
	allScenes := append(BuiltinScenes(), worlds...)

	// Group scenes by their Group field
	groupMap := make(map[string][]SceneInfo)
	for _, s := range allScenes {
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}

	// Built-in first, then alphabetical
	var groupNames []string
	for groupName := range groupMap {
		if groupName != builtinGroup {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	if group, exists := groupMap[builtinGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtinGroup, Scenes: group})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// Load creates the scene with the given ID: "cube", "layers", or
// "world:<name>" for a directory under worldsDir
func Load(id, worldsDir string, mats *material.Materials, logger core.Logger) (*Scene, error) {
	switch id {
	case "cube", "":
		return NewCubeScene(mats), nil
	case "layers":
		return NewLayersScene(mats, logger)
	}

	if name, ok := strings.CutPrefix(id, "world:"); ok {
		if name == "" || strings.ContainsAny(name, `/\`) || name == ".." {
			return nil, fmt.Errorf("invalid world name %q", name)
		}
		return LoadWorldScene(id, filepath.Join(worldsDir, name), mats, logger)
	}

	return nil, fmt.Errorf("unknown scene %q", id)
}

// titleCase converts a filename-style string to title case
// e.g., "pond-island" -> "Pond Island"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
