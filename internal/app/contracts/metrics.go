package contracts

type RecordMetrics interface {
	ObserveSave(category string, duplicates, added int)
	ObserveFetchFailure(category string)
}
