package scene

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"pbr-viewer/core"
	"pbr-viewer/math"
)

// objFace is an already-triangulated face (three vertex references).
type objFace struct {
	corners [3]objRef
}

// objRef holds 0-based position / UV / normal indices (-1 = absent).
type objRef struct{ v, vt, vn int }

type objObject struct {
	name    string
	matName string
	faces   []objFace
}

// loadOBJ parses a Wavefront .obj file and returns its first object or
// group that has faces. A companion .mtl file referenced via "mtllib"
// provides the albedo texture (map_Kd).
func loadOBJ(fsys fs.FS, name string, o loadOptions) (*Mesh, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	dir := path.Dir(name)

	// Indexed OBJ data pools
	var positions []math.Vec3
	var normals []math.Vec3
	var uvs []math.Vec2

	var mtlFiles []string
	var objects []objObject
	cur := &objObject{name: "default"}

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: v: %w", lineNo, err)
			}
			positions = append(positions, p)

		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: vn: %w", lineNo, err)
			}
			normals = append(normals, n)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: vt: expected 2 components", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err := errors.Join(err1, err2); err != nil {
				return nil, fmt.Errorf("line %d: vt: %w", lineNo, err)
			}
			// OBJ puts the texture origin bottom-left
			uvs = append(uvs, math.NewVec2(float32(u), float32(v)).FlipV())

		case "o", "g":
			// Push the current object if it has faces, then start a new one
			if len(cur.faces) > 0 {
				objects = append(objects, *cur)
			}
			objName := "default"
			if len(fields) > 1 {
				objName = fields[1]
			}
			cur = &objObject{name: objName, matName: cur.matName}

		case "usemtl":
			if len(fields) > 1 {
				cur.matName = fields[1]
			}

		case "mtllib":
			mtlFiles = append(mtlFiles, fields[1:]...)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("line %d: face with %d vertices", lineNo, len(fields)-1)
			}
			refs := make([]objRef, 0, len(fields)-1)
			for _, tok := range fields[1:] {
				r, err := parseFaceVertex(tok, len(positions), len(uvs), len(normals))
				if err != nil {
					return nil, fmt.Errorf("line %d: f: %w", lineNo, err)
				}
				refs = append(refs, r)
			}
			// Fan triangulation: 0-1-2, 0-2-3, 0-3-4, ...
			for i := 1; i+1 < len(refs); i++ {
				cur.faces = append(cur.faces, objFace{corners: [3]objRef{refs[0], refs[i], refs[i+1]}})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan obj: %w", err)
	}

	// Push final object
	if len(cur.faces) > 0 {
		objects = append(objects, *cur)
	}
	if len(objects) == 0 {
		return nil, errors.New("no geometry found")
	}
	if len(objects) > 1 {
		core.Logger().Info("obj: using first object only",
			"file", name, "object", objects[0].name, "ignored", len(objects)-1)
	}

	obj := objects[0]
	mesh, err := buildMeshFromOBJ(obj.name, obj.faces, positions, normals, uvs)
	if err != nil {
		return nil, err
	}

	if !o.skipTextures && obj.matName != "" {
		for _, lib := range mtlFiles {
			diffuse, err := findDiffuseMap(fsys, path.Join(dir, lib), obj.matName)
			if err != nil {
				core.Logger().Warn("obj: material library skipped", "mtllib", lib, "err", err)
				continue
			}
			if diffuse != "" {
				mesh.AlbedoTexture = loadMaterialTexture(fsys, path.Join(dir, diffuse), o)
				break
			}
		}
	}
	return mesh, nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var c [3]float32
	for i := range c {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		c[i] = float32(f)
	}
	return math.NewVec3(c[0], c[1], c[2]), nil
}

// parseFaceVertex parses one face vertex token: "v", "v/vt", "v//vn", "v/vt/vn".
// OBJ indices are 1-based; negative values count back from the most recent
// element, so they are resolved against the pool sizes seen so far.
func parseFaceVertex(tok string, nv, nvt, nvn int) (objRef, error) {
	parseIdx := func(s string, count int) (int, error) {
		if s == "" {
			return -1, nil
		}
		n, err := strconv.Atoi(s)
		switch {
		case err != nil:
			return 0, err
		case n > 0:
			return n - 1, nil
		case n < 0 && count+n >= 0:
			return count + n, nil
		case n < 0:
			return 0, fmt.Errorf("relative index %d before start of data", n)
		}
		return 0, fmt.Errorf("index 0 in %q", tok)
	}

	ref := objRef{v: -1, vt: -1, vn: -1}
	parts := strings.Split(tok, "/")
	if len(parts) > 3 {
		return ref, fmt.Errorf("malformed vertex %q", tok)
	}
	var err error
	if ref.v, err = parseIdx(parts[0], nv); err != nil {
		return ref, err
	}
	if len(parts) > 1 {
		if ref.vt, err = parseIdx(parts[1], nvt); err != nil {
			return ref, err
		}
	}
	if len(parts) > 2 {
		if ref.vn, err = parseIdx(parts[2], nvn); err != nil {
			return ref, err
		}
	}
	return ref, nil
}

// buildMeshFromOBJ converts parsed face data into a deduplicated Mesh.
// Every corner must reference a position, a texture coordinate and a
// normal that exist.
func buildMeshFromOBJ(
	name string,
	faces []objFace,
	positions []math.Vec3,
	normals []math.Vec3,
	uvs []math.Vec2,
) (*Mesh, error) {
	vertMap := map[objRef]uint32{}
	var vertices []core.Vertex
	indices := make([]uint32, 0, len(faces)*3)

	for _, face := range faces {
		for _, k := range face.corners {
			if idx, ok := vertMap[k]; ok {
				indices = append(indices, idx)
				continue
			}
			switch {
			case k.v < 0 || k.v >= len(positions):
				return nil, fmt.Errorf("position index %d out of range", k.v+1)
			case k.vn < 0:
				return nil, errors.New("vertex without normal")
			case k.vn >= len(normals):
				return nil, fmt.Errorf("normal index %d out of range", k.vn+1)
			case k.vt < 0:
				return nil, errors.New("vertex without texture coordinate")
			case k.vt >= len(uvs):
				return nil, fmt.Errorf("texture coordinate index %d out of range", k.vt+1)
			}
			idx := uint32(len(vertices))
			vertices = append(vertices, core.Vertex{
				Position: positions[k.v],
				Normal:   normals[k.vn],
				UV:       uvs[k.vt],
			})
			vertMap[k] = idx
			indices = append(indices, idx)
		}
	}

	return CreateMeshFromData(name, vertices, indices), nil
}

// ── MTL loader ───────────────────────────────────────────────────────────────

// findDiffuseMap returns the map_Kd file of material matName in the MTL
// file at name, or "" when the material has none.
func findDiffuseMap(fsys fs.FS, name, matName string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var cur string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "newmtl":
			if len(fields) > 1 {
				cur = fields[1]
			}
		case "map_Kd":
			// options such as "-s 1 1 1" precede the file name
			if cur == matName && len(fields) >= 2 {
				return fields[len(fields)-1], nil
			}
		}
	}
	return "", scanner.Err()
}
