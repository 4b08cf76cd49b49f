// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command drawqdemo queues a synthetic scene and prints the batches
// drawq produces for it.
package main

import (
	"flag"
	"log"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/gogpu/drawq"
	"github.com/gogpu/drawq/backend/wgpu"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/math/f32"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func main() {
	var (
		sprites  = flag.Int("sprites", 200, "dynamic sprites per frame")
		tiles    = flag.Int("tiles", 16, "background tiles per side")
		textures = flag.Int("textures", 4, "distinct sprite textures")
		layers   = flag.Int("layers", 3, "sprite layers")
		frames   = flag.Int("frames", 2, "frames to run")
		seed     = flag.Uint64("seed", 1, "random seed")
		upload   = flag.Bool("upload", false, "mirror buffers to a noop GPU device")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	drawq.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	var opts []drawq.Option
	if *upload {
		up, err := noopUploader()
		if err != nil {
			log.Fatalf("Failed to create uploader: %v", err)
		}
		defer up.Destroy()
		opts = append(opts, drawq.WithUploader(up))
	}
	st := drawq.NewStage(opts...)

	if _, err := st.CreatePersistentQueue(background(*tiles), true); err != nil {
		log.Fatalf("Failed to create background: %v", err)
	}

	p := message.NewPrinter(language.English)
	rng := rand.New(rand.NewPCG(*seed, *seed))
	for frame := range *frames {
		for range *sprites {
			tex := drawq.TextureID(2 + rng.IntN(max(*textures, 1)))
			layer := rng.IntN(max(*layers, 1))
			st.Draw(sprite(rng.Float32()*100, rng.Float32()*100, rng.Float32(), layer, tex))
		}

		batches, err := st.Prepare()
		if err != nil {
			log.Fatalf("Frame %d: %v", frame, err)
		}
		stats := st.Stats()
		p.Printf("frame %d: %d requests, %d vertices, %d indices, %d batches\n",
			frame, stats.DynamicRequests, stats.Vertices, stats.Indices, stats.Batches)
		if *verbose {
			for _, b := range batches {
				p.Printf("  %v\n", b)
			}
		}
		st.EndFrame()
	}
}

// background returns a grid of textured tiles on layer 0 at the back.
func background(n int) []drawq.DrawRequest {
	reqs := make([]drawq.DrawRequest, 0, n*n)
	for y := range n {
		for x := range n {
			r := rect(float32(x), float32(y), 1, 1)
			r.FillType = drawq.Textured
			r.Texture0 = 1
			r.TextureWrap0 = drawq.Wrap
			r.Depth = 1
			reqs = append(reqs, r)
		}
	}
	return reqs
}

func sprite(x, y, depth float32, layer int, tex drawq.TextureID) drawq.DrawRequest {
	r := rect(x, y, 4, 4)
	r.FillType = drawq.Textured
	r.Texture0 = tex
	r.Depth = depth
	r.Layer = layer
	return r
}

func rect(x, y, w, h float32) drawq.DrawRequest {
	white := f32.Vec4{1, 1, 1, 1}
	return drawq.DrawRequest{
		FillType: drawq.Coloured,
		Vertices: []drawq.Vertex{
			{Position: f32.Vec2{x, y}, Colour: white, TexCoord0: f32.Vec2{0, 0}},
			{Position: f32.Vec2{x + w, y}, Colour: white, TexCoord0: f32.Vec2{1, 0}},
			{Position: f32.Vec2{x + w, y + h}, Colour: white, TexCoord0: f32.Vec2{1, 1}},
			{Position: f32.Vec2{x, y + h}, Colour: white, TexCoord0: f32.Vec2{0, 1}},
		},
		Indices:    []uint32{0, 1, 2, 2, 3, 0},
		BaseColour: drawq.White,
	}
}

func noopUploader() (*wgpu.Uploader, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, err
	}
	adapters := instance.EnumerateAdapters(nil)
	dev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		return nil, err
	}
	return wgpu.NewUploader(dev.Device, dev.Queue), nil
}
