// Package renderer draws a scene graph with OpenGL: Phong shading, one
// directional sun, ambient light, spot lights and linear fog.
package renderer

import (
	_ "embed"
	"fmt"
	"strconv"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/autobahn/internal/engine/camera"
	"github.com/Faultbox/autobahn/internal/engine/geometry"
	"github.com/Faultbox/autobahn/internal/engine/lighting"
	"github.com/Faultbox/autobahn/internal/engine/shader"
	"github.com/Faultbox/autobahn/internal/logger"
	"github.com/Faultbox/autobahn/internal/scene"
	"github.com/Faultbox/autobahn/pkg/math"
)

//go:embed shaders/phong.vert
var phongVert string

//go:embed shaders/phong.frag
var phongFrag string

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Stats describes the last rendered frame.
type Stats struct {
	DrawCalls     int
	Triangles     int
	SpotLights    int
	DroppedLights int
	// Resident is the number of meshes with live GPU buffers.
	Resident int
}

// Renderer uploads scene geometry on first use and keeps it until the
// geometry is disposed.
type Renderer struct {
	config  Config
	program *shader.Program
	meshes  map[*geometry.Mesh]*gpuMesh
	spots   *lighting.SpotLightBuffer
	stats   Stats
	log     *zap.Logger
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
		meshes: make(map[*geometry.Mesh]*gpuMesh),
		spots:  lighting.NewSpotLightBuffer(),
		log:    logger.Named("renderer"),
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.FrontFace(gl.CCW)
	gl.CullFace(gl.BACK)

	var err error
	r.program, err = shader.New("phong", phongVert, phongFrag, map[string]string{
		"MAX_SPOT_LIGHTS": strconv.Itoa(lighting.MaxSpotLights),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close frees the program and every resident mesh.
func (r *Renderer) Close() {
	r.log.Info("closing renderer", zap.Int("resident", len(r.meshes)))
	for m, g := range r.meshes {
		g.release()
		delete(r.meshes, m)
	}
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the current viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Stats returns the statistics of the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render clears to the scene background and draws every visible mesh node.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	env := lighting.EnvironmentFrom(s)
	r.stats = Stats{}

	gl.ClearColor(env.Background[0], env.Background[1], env.Background[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.Enable(gl.DEPTH_TEST)

	p := r.program
	p.Use()
	p.SetMat4("uView", cam.ViewMatrix())
	p.SetMat4("uProjection", cam.ProjectionMatrix(r.Aspect()))
	p.SetVec3("uEye", cam.Position.Array())
	r.applyEnvironment(env)
	r.applySpotLights(s, cam.Position)

	s.Root.WalkWorld(math.Identity(), func(n *scene.Node, world math.Mat4) {
		if n.Mesh == nil || n.Mesh.Geometry == nil || n.Mesh.Geometry.Disposed() {
			return
		}
		r.drawMesh(n.Mesh, world)
	})

	gl.BindVertexArray(0)
	r.stats.Resident = len(r.meshes)
}

func (r *Renderer) applyEnvironment(env lighting.Environment) {
	p := r.program
	p.SetVec3("uAmbient", env.Ambient)
	p.SetVec3("uSunDirection", env.SunDirection)
	p.SetVec3("uSunColor", env.SunColor)
	p.SetVec3("uFogColor", env.FogColor)
	p.SetFloat("uFogNear", env.FogNear)
	p.SetFloat("uFogFar", env.FogFar)
}

func (r *Renderer) applySpotLights(s *scene.Scene, eye math.Vec3) {
	dropped := r.spots.Collect(s, eye)
	if dropped > 0 {
		if ce := r.log.Check(zap.DebugLevel, "spot lights dropped"); ce != nil {
			ce.Write(zap.Int("dropped", dropped), zap.Int("max", lighting.MaxSpotLights))
		}
	}
	r.stats.SpotLights = r.spots.Count
	r.stats.DroppedLights = dropped

	p := r.program
	p.SetInt("uSpotCount", int32(r.spots.Count))
	p.SetVec3Array("uSpotPositions", r.spots.GetPositions())
	p.SetVec3Array("uSpotDirections", r.spots.GetDirections())
	p.SetVec3Array("uSpotColors", r.spots.GetColors())
	p.SetVec2Array("uSpotCones", r.spots.GetCones())
	p.SetVec2Array("uSpotAttenuation", r.spots.GetAttenuation())
}

func (r *Renderer) drawMesh(m *scene.Mesh, world math.Mat4) {
	g := r.resident(m.Geometry)
	if g.indexCount == 0 {
		return
	}

	p := r.program
	p.SetMat4("uModel", world)
	p.SetMat3("uNormalMatrix", world.Mat3x3())

	mat := m.Material
	if mat == nil {
		mat = defaultMaterial
	}
	p.SetVec3("uColor", scene.RGB(mat.Color))
	p.SetVec3("uSpecular", scene.RGB(mat.Specular))
	p.SetFloat("uShininess", max(mat.Shininess, 1))
	if mat.DoubleSided {
		gl.Disable(gl.CULL_FACE)
	} else {
		gl.Enable(gl.CULL_FACE)
	}

	g.draw()
	r.stats.DrawCalls++
	r.stats.Triangles += int(g.indexCount) / 3
}

var defaultMaterial = scene.NewMaterial(scene.Hex(0xffffff))

// resident returns the GPU buffers of m, uploading them on first use. The
// buffers are freed when m is disposed.
func (r *Renderer) resident(m *geometry.Mesh) *gpuMesh {
	if g, ok := r.meshes[m]; ok {
		return g
	}
	g := uploadMesh(m)
	r.meshes[m] = g
	m.OnDispose(func() {
		g.release()
		delete(r.meshes, m)
	})
	if ce := r.log.Check(zap.DebugLevel, "mesh uploaded"); ce != nil {
		ce.Write(zap.String("name", m.Name), zap.Int("triangles", m.TriangleCount()))
	}
	return g
}
