// Package battleship is the naval battle engine: one human against a machine
// on two 10x10 boards.
//
// A Board is mutated only by the placement funcs (PlaceShip,
// PlaceFleetRandomly) during setup and by ReceiveShot during play. Ships live
// in the board's arena and cells refer to them by ShipID. Sunk counts are
// always recounted from the cells.
//
// Game sequences a match: Setup until the human fleet matches the catalog,
// Active while the sides fire, then Victory or Defeat. The machine's turn is
// played eagerly inside Fire. Every state change is saved through a
// SnapshotStore and the snapshot is deleted when the game concludes.
package battleship
