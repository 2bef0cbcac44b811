package forecasting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFitGBRT_FitsSeparableSamples(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{1, 2, 3, 4}

	model := fitGBRT(features, target, gbrtConfig{
		estimators:   estimators,
		learningRate: learningRate,
		maxDepth:     maxTreeDepth,
	})

	// Quatro amostras separáveis: o resíduo decai geometricamente a cada árvore
	for i, f := range features {
		assert.InDelta(t, target[i], model.predict(f), 0.01)
	}
}

func TestFitGBRT_ExtrapolatesToNearestLeaf(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}, {4}}
	target := []float64{1, 2, 3, 4}

	model := fitGBRT(features, target, gbrtConfig{
		estimators:   estimators,
		learningRate: learningRate,
		maxDepth:     maxTreeDepth,
	})

	// Fora do intervalo observado a árvore cai na folha da borda
	assert.InDelta(t, 4.0, model.predict([]float64{10}), 0.01)
	assert.InDelta(t, 1.0, model.predict([]float64{-3}), 0.01)
}

func TestBuildTree_ConstantTargetIsLeaf(t *testing.T) {
	features := [][]float64{{1}, {2}, {3}}
	target := []float64{7, 7, 7}

	tree := buildTree(features, target, []int{0, 1, 2}, maxTreeDepth)

	assert.True(t, tree.leaf)
	assert.Equal(t, 7.0, tree.value)
}

func TestUniqueSorted(t *testing.T) {
	features := [][]float64{{3}, {1}, {3}, {2}, {1}}

	values := uniqueSorted(features, []int{0, 1, 2, 3, 4}, 0)

	assert.Equal(t, []float64{1, 2, 3}, values)
}
