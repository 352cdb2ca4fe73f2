package knapsack

import "errors"

var (
	// ErrInvalidInstance возвращается при некорректных данных экземпляра:
	// отрицательная вместимость, отрицательные прибыль/вес, разная длина массивов.
	ErrInvalidInstance = errors.New("knapsack: invalid instance")

	// ErrLengthMismatch возвращается, если длина решения не совпадает с числом предметов.
	ErrLengthMismatch = errors.New("knapsack: solution length mismatch")

	// ErrUnknownFormat возвращается загрузчиком для неизвестного формата входных данных.
	ErrUnknownFormat = errors.New("knapsack: unknown instance format")
)
