package gridstate

import "github.com/z0vix/blockdp/internal/dp"

// DPSpec builds the generic dp.Spec for the baked-in 4x6, six-piece
// catalogue. Production code (cmd/blockdp-build) always uses this;
// tests that want a smaller state space build their own dp.Spec
// directly instead.
func DPSpec() dp.Spec {
	pieces := make([]dp.PieceSpec, NumPieces)
	for i, p := range Pieces {
		pieces[i] = dp.PieceSpec{Mask: p.Mask, Cells: p.Cells, MaxX: p.MaxX, MaxY: p.MaxY}
	}
	return dp.Spec{TotalCells: TotalCells, Pieces: pieces}
}
