// internal/types/types.go
package types

// EntityID: идентификатор сущности в хранилище симуляции. 0 означает "нет сущности".
type EntityID uint64

// None: пустой идентификатор
const None EntityID = 0
