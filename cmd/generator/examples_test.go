package main

import (
	"errors"
	"testing"

	"github.com/roadplan/xodrgen/pkg/export"
	"github.com/roadplan/xodrgen/pkg/util"
)

func TestExampleNetworksBuild(t *testing.T) {
	for name, build := range exampleNetworks {
		t.Run(name, func(t *testing.T) {
			odr, err := build(nil)
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			if len(odr.Roads()) == 0 {
				t.Fatal("network has no roads")
			}
			for _, road := range odr.Roads() {
				if !road.PlanView().Adjusted {
					t.Errorf("road %d is not placed", road.ID())
				}
			}
			// all example networks have to survive the preview export
			if _, err := export.FeatureCollection(odr, export.DefaultSampleStep); err != nil {
				t.Errorf("export: %v", err)
			}
			if _, err := odr.Document().WriteToBytes(); err != nil {
				t.Errorf("serialize: %v", err)
			}
		})
	}
}

func TestExampleNames(t *testing.T) {
	names, err := exampleNames(nil)
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if len(names) != len(exampleNetworks) {
		t.Errorf("got %d names, want %d", len(names), len(exampleNetworks))
	}

	names, err = exampleNames([]string{"highway_merge"})
	if err != nil || len(names) != 1 || names[0] != "highway_merge" {
		t.Errorf("got %v %v, want the requested name", names, err)
	}

	if _, err := exampleNames([]string{"no_such_network"}); !errors.Is(err, util.ErrBadParamInput) {
		t.Errorf("got %v, want ErrBadParamInput", err)
	}
}
