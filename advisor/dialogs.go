package advisor

import (
	"errors"

	"listing-advisor/models"
	"listing-advisor/services"
)

var errNoLoader = errors.New("no model configured")

// RecommendDialog is an open recommendation form.
type RecommendDialog struct {
	s *Session
}

// OpenRecommend opens a recommendation form. Opening has no map effect.
func (s *Session) OpenRecommend() *RecommendDialog {
	return &RecommendDialog{s: s}
}

// Search validates the form and, on a match, redraws the map with the
// recommended listing and its neighbourhood. Validation errors and
// ErrNoMatch leave the map as it was.
func (d *RecommendDialog) Search(form services.RecommendForm) (*models.Recommendation, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	c, err := form.Criteria()
	if err != nil {
		return nil, err
	}
	rec, err := d.s.recommender.Recommend(c)
	if err != nil {
		return nil, err
	}
	d.s.presenter.ShowRecommendation(rec)
	return rec, nil
}

// Close resets the map to its default view whether or not a search ran.
func (d *RecommendDialog) Close() {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.presenter.Reset()
}

// EvaluateDialog is an open price evaluation form holding its own model.
type EvaluateDialog struct {
	s         *Session
	evaluator *services.Evaluator
}

// OpenEvaluate opens an evaluation form and loads the price model for it.
// A load failure is returned as an ArtifactError alongside a usable dialog;
// the next Evaluate retries the load.
func (s *Session) OpenEvaluate() (*EvaluateDialog, error) {
	d := &EvaluateDialog{s: s}
	return d, d.ensureModel()
}

func (d *EvaluateDialog) ensureModel() error {
	if d.evaluator != nil {
		return nil
	}
	if d.s.loadModel == nil {
		return &services.ArtifactError{Op: "load", Err: errNoLoader}
	}
	model, err := d.s.loadModel()
	if err != nil {
		d.s.logger.Error("[evaluate] Failed to load price model: %v", err)
		return &services.ArtifactError{Op: "load", Err: err}
	}
	d.evaluator = services.NewEvaluator(d.s.table, model, d.s.logger)
	return nil
}

// Suburbs lists the suburbs the form accepts.
func (d *EvaluateDialog) Suburbs() []string {
	return d.s.table.Suburbs()
}

// Evaluate validates the form, prices it and redraws the comparable
// listings. Any failure, including a prediction error, leaves the map as
// it was.
func (d *EvaluateDialog) Evaluate(form services.EvaluateForm) (*models.Evaluation, error) {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()

	c, err := form.Criteria()
	if err != nil {
		return nil, err
	}
	if err := d.ensureModel(); err != nil {
		return nil, err
	}
	eval, err := d.evaluator.Evaluate(c)
	if err != nil {
		return nil, err
	}
	d.s.presenter.ShowComparables(eval.Comparables)
	return eval, nil
}

// Close resets the map to its default view.
func (d *EvaluateDialog) Close() {
	d.s.mu.Lock()
	defer d.s.mu.Unlock()
	d.s.presenter.Reset()
}
