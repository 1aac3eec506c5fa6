package interfaces

//go:generate mockgen -source=eventbus.go -destination=mock/mock_eventbus.go -package=mock
//go:generate mockgen -source=txcm.go -destination=mock/mock_txcm.go -package=mock
