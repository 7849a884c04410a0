package orchestrator

import "github.com/user/jxlpack/pkg/encoder"

// progressivePlan is the derived set of progressive sub-controls for one
// frame. Zero-valued toggles mean "leave the engine default".
type progressivePlan struct {
	responsive encoder.Toggle
	dcPasses   int
	ac         encoder.Toggle
	qac        encoder.Toggle
}

// deriveProgressive maps the user's progressive intensity onto the engine's
// sub-controls. Modular frames only know the single responsive flag; VarDCT
// frames accumulate passes over cumulative thresholds:
//
//	level >= 1  one low-frequency pass
//	level >= 2  plus high-frequency quantization progression
//	level >= 3  plus high-frequency spectral progression
//	level >= 4  two low-frequency passes
func deriveProgressive(level int, modular bool) progressivePlan {
	plan := progressivePlan{
		responsive: encoder.ToggleDefault,
		dcPasses:   encoder.ProgressiveDCDefault,
		ac:         encoder.ToggleDefault,
		qac:        encoder.ToggleDefault,
	}
	if level <= 0 {
		return plan
	}
	if modular {
		plan.responsive = encoder.ToggleOn
		return plan
	}
	if level >= 4 {
		plan.dcPasses = 2
	} else {
		plan.dcPasses = 1
	}
	if level >= 2 {
		plan.qac = encoder.ToggleOn
	}
	if level >= 3 {
		plan.ac = encoder.ToggleOn
	}
	return plan
}

// apply writes the derived controls onto fs, skipping engine defaults.
func (p progressivePlan) apply(fs *encoder.FrameSettings) error {
	if p.responsive != encoder.ToggleDefault {
		if err := fs.SetModularProgressive(p.responsive); err != nil {
			return err
		}
	}
	if p.dcPasses != encoder.ProgressiveDCDefault {
		if err := fs.SetProgressiveDC(p.dcPasses); err != nil {
			return err
		}
	}
	if p.qac != encoder.ToggleDefault {
		if err := fs.SetQProgressiveAC(p.qac); err != nil {
			return err
		}
	}
	if p.ac != encoder.ToggleDefault {
		if err := fs.SetProgressiveAC(p.ac); err != nil {
			return err
		}
	}
	return nil
}
