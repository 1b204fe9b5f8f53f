package asset

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"
)

var (
	red   = color.NRGBA{255, 0, 0, 255}
	green = color.NRGBA{0, 255, 0, 255}
	blue  = color.NRGBA{0, 0, 255, 255}
	white = color.NRGBA{255, 255, 255, 255}
)

// Write a set of files below dir. Keys are slash separated relative paths.
func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

// Join lines with a trailing newline.
func lines(l ...string) string {
	return strings.Join(l, "\n") + "\n"
}

// A 2x2 image with red, green on the top row and blue, white on the bottom
// row.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, red)
	img.SetNRGBA(1, 0, green)
	img.SetNRGBA(0, 1, blue)
	img.SetNRGBA(1, 1, white)
	return img
}

func encodeBMP(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func encodePNG(t *testing.T, img image.Image) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

var boundBoxLines = []string{
	"1,1,1", "-1,1,1", "1,1,-1", "-1,1,-1",
	"1,-1,1", "-1,-1,1", "1,-1,-1", "-1,-1,-1",
}

// A single triangle mesh with flat or smooth normals.
func testMeshFile(smooth bool) string {
	nCount, normals, normRef := "normals 1", []string{"0,0,1"}, "0"
	if smooth {
		nCount, normals, normRef = "normals 3", []string{"0,0,1", "0,1,0", "1,0,0"}, "0,1,2"
	}

	l := []string{
		"version 1",
		"format 0",
		"vertices 3",
		nCount,
		"triangles 1",
		"center 0.5,0.5,0",
		"radius 2",
		"id tri",
		"0,0,0",
		"1,0,0",
		"0,1,0",
	}
	l = append(l, normals...)
	l = append(l, "0,1,2", normRef)
	l = append(l, boundBoxLines...)
	return lines(l...)
}

// Files for a level with one mesh object, one light proxy object, an endless
// light with an invisible proxy and a falloff light bound to the proxy
// object.
func testLevelFiles(t *testing.T) map[string]string {
	normalImg := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	normalImg.SetNRGBA(0, 0, color.NRGBA{255, 128, 0, 255})

	return map[string]string{
		"materials.mpl": lines(
			"version 1",
			"count 2",
			"red", "0.1,0,0", "1,0,0", "1,1,1", "10", "0.5", "0.2", "0", "1.5",
			"glass", "0,0,0", "0.9,0.9,1", "1,1,1", "50", "1", "0.1", "0.8", "1.33",
		),
		"meshes/tri.ml": lines(
			"version 1",
			"lods 2",
			"id tri",
			"dir lod/",
			"tri0.msh",
			"tri1.msh",
		),
		"meshes/lod/tri0.msh": testMeshFile(true),
		"meshes/lod/tri1.msh": testMeshFile(false),
		"textures/brick.tl": lines(
			"version 1",
			"lods 1",
			"id brick",
			"dir img/",
			"brick.bmp",
			"brick_n.png",
		),
		"textures/img/brick.bmp":   encodeBMP(t, testImage()),
		"textures/img/brick_n.png": encodePNG(t, normalImg),
		"objects/tri.obj": lines(
			"version 1",
			"static 1",
			"solid 1",
			"visible 1",
			"occluder 0",
			"backfaces 1",
			"maxdist 2",
			"scale 2",
			"mass 3",
			"type 0",
			"name Triangle",
		),
		"objects/tri.tmap": lines(
			"version 1",
			"format 0",
			"3 red", "0,0", "1,0", "0,1",
			"1 unknown", "0.5,0.5", "1,1", "0,0",
		),
		"objects/lamp.obj": lines(
			"version 1",
			"static 0",
			"solid 1",
			"visible 1",
			"occluder 0",
			"backfaces 0",
			"maxdist 0",
			"scale 1",
			"mass 1",
			"type -2",
			"name Lamp",
		),
		"lights/sun.lgt": lines(
			"version 1",
			"color 1,0.5,0",
			"bulb 0",
			"range 0",
			"power 2",
			"radius 3",
			"object null",
			"id sun",
		),
		"lights/bulb.lgt": lines(
			"version 1",
			"color 0,0,1",
			"bulb 1",
			"range 100",
			"power 1",
			"radius 2",
			"object lamp0",
			"id bulb",
		),
		"levels/level.llf": lines(
			"version 1",
			"meshes 1",
			"textures 1",
			"objects 2",
			"endless 1",
			"falloff 1",
			"campos 0,0,-10",
			"camori 0,0,0",
			"ambient 0.2,0.2,0.2",
			"../meshes/tri.ml",
			"../textures/brick.tl",
			"tri0", "1,1", "../objects/tri.obj", "../objects/tri.tmap", "1,2,3", "0,0,0", "0,0.1,0", "0,0,1",
			"lamp0", "0,0", "../objects/lamp.obj", "null", "0,5,0", "0,0,0", "0,0,0", "0,0,0",
			"../lights/sun.lgt", "0,100,0", "0,-1,0",
			"../lights/bulb.lgt", "5,5,5", "0,-1,0",
		),
	}
}
