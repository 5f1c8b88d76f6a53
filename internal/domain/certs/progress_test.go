package certs

import "testing"

func TestComputeProgressRounding(t *testing.T) {
	cert := Certification{
		RequiredModules: `["module-1","module-2","module-3"]`,
	}

	done := map[string]bool{"module-1": true, "module-2": true}
	p := ComputeProgress(&cert, nil, done)

	if p.Completed != 2 || p.Total != 3 {
		t.Fatalf("progress = %d/%d, want 2/3", p.Completed, p.Total)
	}
	// 2/3 rounds to 67, not 66
	if p.Percentage != 67 {
		t.Errorf("Percentage = %d, want 67", p.Percentage)
	}
}

func TestComputeProgressMixedRequirements(t *testing.T) {
	cert := Certification{
		RequiredMissions: `["mission-1","mission-2"]`,
		RequiredModules:  `["module-1"]`,
	}

	p := ComputeProgress(&cert,
		map[string]bool{"mission-1": true},
		map[string]bool{"module-1": true},
	)
	if p.Completed != 2 || p.Total != 3 || p.Percentage != 67 {
		t.Errorf("progress = %+v, want 2/3 = 67%%", p)
	}

	full := ComputeProgress(&cert,
		map[string]bool{"mission-1": true, "mission-2": true},
		map[string]bool{"module-1": true},
	)
	if full.Percentage != 100 {
		t.Errorf("Percentage = %d, want 100", full.Percentage)
	}
}

func TestComputeProgressEmptyRequirements(t *testing.T) {
	p := ComputeProgress(&Certification{}, nil, nil)
	if p.Percentage != 0 || p.Total != 0 {
		t.Errorf("empty requirements should yield zero progress, got %+v", p)
	}
}

func TestMeetsScore(t *testing.T) {
	cert := Certification{MinimumScore: 80}

	if avg, ok := MeetsScore(&cert, []float64{85, 75}); !ok || avg != 80 {
		t.Errorf("avg 80 vs minimum 80: avg=%v ok=%v, want 80 true", avg, ok)
	}
	if _, ok := MeetsScore(&cert, []float64{85, 70}); ok {
		t.Error("avg 77.5 must not meet a minimum of 80")
	}
	// No required missions means no score gate.
	if _, ok := MeetsScore(&cert, nil); !ok {
		t.Error("empty score set should pass")
	}
}

func TestRequirementIDs(t *testing.T) {
	cert := Certification{
		RequiredMissions: `["mission-41","mission-42"]`,
	}
	missions, modules := RequirementIDs(&cert)
	if len(missions) != 2 || missions[0] != "mission-41" {
		t.Errorf("missions = %v", missions)
	}
	if len(modules) != 0 {
		t.Errorf("modules = %v, want empty", modules)
	}
}
