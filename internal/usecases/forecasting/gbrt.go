package forecasting

// Gradient boosting de árvores de regressão por mínimos quadrados. O ajuste é
// totalmente determinístico: as features são percorridas em ordem fixa e os
// limiares candidatos em ordem ascendente, então empates sempre resolvem para
// o mesmo split.

type gbrtConfig struct {
	estimators   int
	learningRate float64
	maxDepth     int
}

type treeNode struct {
	leaf      bool
	value     float64
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
}

type gbrtModel struct {
	base         float64
	learningRate float64
	trees        []*treeNode
}

// fitGBRT ajusta o ensemble: começa da média do alvo e, a cada iteração,
// ajusta uma árvore aos resíduos correntes e soma a contribuição dela
// atenuada pela taxa de aprendizado.
func fitGBRT(features [][]float64, target []float64, cfg gbrtConfig) *gbrtModel {
	model := &gbrtModel{
		base:         mean(target),
		learningRate: cfg.learningRate,
		trees:        make([]*treeNode, 0, cfg.estimators),
	}

	current := make([]float64, len(target))
	for i := range current {
		current[i] = model.base
	}

	indices := make([]int, len(target))
	for i := range indices {
		indices[i] = i
	}

	residuals := make([]float64, len(target))
	for m := 0; m < cfg.estimators; m++ {
		for i := range target {
			residuals[i] = target[i] - current[i]
		}

		tree := buildTree(features, residuals, indices, cfg.maxDepth)
		model.trees = append(model.trees, tree)

		for i := range current {
			current[i] += cfg.learningRate * tree.predict(features[i])
		}
	}

	return model
}

// predict soma a contribuição de todas as árvores sobre a predição base.
func (m *gbrtModel) predict(features []float64) float64 {
	out := m.base
	for _, tree := range m.trees {
		out += m.learningRate * tree.predict(features)
	}
	return out
}

func (n *treeNode) predict(features []float64) float64 {
	node := n
	for !node.leaf {
		if features[node.feature] <= node.threshold {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

// buildTree constrói recursivamente uma árvore de regressão gulosa que
// minimiza a soma dos erros quadráticos dos dois lados do split.
func buildTree(features [][]float64, target []float64, indices []int, depth int) *treeNode {
	if depth == 0 || len(indices) < 2 || constantTarget(target, indices) {
		return &treeNode{leaf: true, value: meanAt(target, indices)}
	}

	feature, threshold, ok := bestSplit(features, target, indices)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(target, indices)}
	}

	var left, right []int
	for _, i := range indices {
		if features[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      buildTree(features, target, left, depth-1),
		right:     buildTree(features, target, right, depth-1),
	}
}

// bestSplit avalia cada feature em ordem e cada limiar (ponto médio entre
// valores vizinhos distintos) em ordem ascendente; só um ganho estritamente
// melhor substitui o split corrente.
func bestSplit(features [][]float64, target []float64, indices []int) (int, float64, bool) {
	bestFeature := -1
	bestThreshold := 0.0
	bestSSE := 0.0
	found := false

	if len(indices) == 0 {
		return 0, 0, false
	}
	featureCount := len(features[indices[0]])

	for f := 0; f < featureCount; f++ {
		values := uniqueSorted(features, indices, f)

		for v := 0; v+1 < len(values); v++ {
			threshold := (values[v] + values[v+1]) / 2

			var leftSum, leftSq, rightSum, rightSq float64
			var leftN, rightN int
			for _, i := range indices {
				y := target[i]
				if features[i][f] <= threshold {
					leftSum += y
					leftSq += y * y
					leftN++
				} else {
					rightSum += y
					rightSq += y * y
					rightN++
				}
			}

			if leftN == 0 || rightN == 0 {
				continue
			}

			// SSE de cada lado em relação à própria média
			sse := leftSq - leftSum*leftSum/float64(leftN) +
				rightSq - rightSum*rightSum/float64(rightN)

			if !found || sse < bestSSE {
				bestFeature = f
				bestThreshold = threshold
				bestSSE = sse
				found = true
			}
		}
	}

	return bestFeature, bestThreshold, found
}

func uniqueSorted(features [][]float64, indices []int, feature int) []float64 {
	values := make([]float64, 0, len(indices))
	for _, i := range indices {
		values = append(values, features[i][feature])
	}

	// Insertion sort: os vetores aqui têm dezenas de posições no máximo
	for i := 1; i < len(values); i++ {
		for j := i; j > 0 && values[j] < values[j-1]; j-- {
			values[j], values[j-1] = values[j-1], values[j]
		}
	}

	unique := values[:0]
	for i, v := range values {
		if i == 0 || v != unique[len(unique)-1] {
			unique = append(unique, v)
		}
	}
	return unique
}

func constantTarget(target []float64, indices []int) bool {
	for _, i := range indices[1:] {
		if target[i] != target[indices[0]] {
			return false
		}
	}
	return true
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func meanAt(values []float64, indices []int) float64 {
	if len(indices) == 0 {
		return 0
	}
	sum := 0.0
	for _, i := range indices {
		sum += values[i]
	}
	return sum / float64(len(indices))
}
