package entity

import (
	"testing"

	"github.com/milk9111/polarity/ecs"
	"github.com/milk9111/polarity/ecs/component"
	"github.com/milk9111/polarity/levels"
	"github.com/milk9111/polarity/magnet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildLevelDemo(t *testing.T) {
	lvl, err := levels.Load("demo")
	require.NoError(t, err)

	w := ecs.NewWorld()
	scene, err := BuildLevel(w, lvl)
	require.NoError(t, err)
	assert.Equal(t, "demo", scene.Name)
	assert.Len(t, scene.Sources, len(lvl.Sources))
	assert.Equal(t, len(lvl.Sources)+1, w.EntityCount())

	wall := scene.Sources["tilted_wall"]
	tr, ok := ecs.Get(w, wall, component.TransformComponent)
	require.True(t, ok)
	assert.Equal(t, 30.0, tr.X)
	assert.Equal(t, 1.5, tr.ScaleX)
	assert.InDelta(t, 1.5707963, tr.Rotation, 1e-6)

	ms, ok := ecs.Get(w, wall, component.MagnetSourceComponent)
	require.True(t, ok)
	assert.True(t, ms.Dirty)
	assert.NotNil(t, ms.Geometry)
	assert.Equal(t, "tilted_wall", ms.Source.Name)
	assert.Empty(t, ms.Source.Regions(), "regions wait for the rebuild system")

	body, ok := ecs.Get(w, scene.Actor, component.PhysicsBodyComponent)
	require.True(t, ok)
	assert.Equal(t, 0.8, body.Width)
	assert.Equal(t, 6.0, body.MoveSpeed)
	assert.Nil(t, body.Body)

	actor, ok := ecs.Get(w, scene.Actor, component.MagnetActorComponent)
	require.True(t, ok)
	assert.Equal(t, magnet.Positive, actor.Controller.Polarity)
	assert.True(t, ecs.Has(w, scene.Actor, component.InputComponent))
}

func TestBuildLevelWithoutActor(t *testing.T) {
	lvl, err := levels.Parse([]byte("sources: [{name: a, tiles: ['#']}]"), "bare")
	require.NoError(t, err)

	w := ecs.NewWorld()
	scene, err := BuildLevel(w, lvl)
	require.NoError(t, err)
	assert.False(t, scene.Actor.Valid())
	assert.Equal(t, 1, w.EntityCount())

	_, err = BuildLevel(nil, lvl)
	assert.Error(t, err)
	assert.Error(t, ApplyLevel(w, nil, lvl))
}

func TestApplyLevelBuildsMissingActor(t *testing.T) {
	bare, err := levels.Parse([]byte("name: room"), "room")
	require.NoError(t, err)
	w := ecs.NewWorld()
	scene, err := BuildLevel(w, bare)
	require.NoError(t, err)

	withActor, err := levels.Parse([]byte("actor: {position: {x: 2, y: 3}}"), "room")
	require.NoError(t, err)
	require.NoError(t, ApplyLevel(w, scene, withActor))
	require.True(t, w.IsAlive(scene.Actor))

	tr, _ := ecs.Get(w, scene.Actor, component.TransformComponent)
	assert.Equal(t, 2.0, tr.X)
	assert.Equal(t, 3.0, tr.Y)
}

func TestApplyLevelKeepsUnnamedSources(t *testing.T) {
	doc := []byte("sources: [{tiles: ['##']}, {polarity: blue, tiles: ['#']}]")
	lvl, err := levels.Parse(doc, "unnamed.yaml")
	require.NoError(t, err)

	w := ecs.NewWorld()
	scene, err := BuildLevel(w, lvl)
	require.NoError(t, err)
	before := make(map[string]ecs.Entity, len(scene.Sources))
	for name, e := range scene.Sources {
		before[name] = e
	}

	reloaded, err := levels.Parse(doc, "unnamed.yaml")
	require.NoError(t, err)
	require.NoError(t, ApplyLevel(w, scene, reloaded))

	assert.Equal(t, before, scene.Sources)
	for _, e := range before {
		assert.True(t, w.IsAlive(e))
	}
	assert.Equal(t, 2, w.EntityCount())
}
