package model

import "time"

// Tipos de notificación. Los tres primeros son "alertas activas": quedan
// pendientes hasta que alguien las marca como resueltas.
const (
	TipoAlertaFaltante        = "alerta_faltante"
	TipoDefectoCalidad        = "defecto_calidad"
	TipoRecepcionConProblemas = "recepcion_con_problemas"
	TipoRecepcionExitosa      = "recepcion_exitosa"
	TipoOrdenActualizada      = "orden_actualizada"
	TipoOrdenCancelada        = "orden_cancelada"
)

const PrioridadCritica = "crítica"

// Notificacion es el registro durable de eventos sobre órdenes.
// Reemplaza al antiguo arreglo en memoria: sobrevive reinicios y es visible
// desde todas las instancias del proceso.
type Notificacion struct {
	ID                   uint     `gorm:"primaryKey;autoIncrement"`
	Tipo                 string   `gorm:"not null;index"`
	Mensaje              string   `gorm:"not null"`
	OrdenID              *uint    `gorm:"index"`
	TiendaID             *uint    `gorm:"index"`
	ProductosFaltantes   []string `gorm:"serializer:json"`
	ProductosDefectuosos []string `gorm:"serializer:json"`
	Prioridad            string   `gorm:"not null;default:'media'"`
	Leida                bool     `gorm:"not null;default:false;index"`
	Resuelta             bool     `gorm:"not null;default:false;index"`
	Resolucion           *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Notificacion) TableName() string { return "notificaciones" }

// EsAlerta reports whether this tipo requires manual resolution.
func (n *Notificacion) EsAlerta() bool {
	switch n.Tipo {
	case TipoAlertaFaltante, TipoDefectoCalidad, TipoRecepcionConProblemas:
		return true
	}
	return false
}

// EsCritica reports whether the notification must also be mailed to the
// administrators.
func (n *Notificacion) EsCritica() bool {
	if n.Prioridad == PrioridadCritica {
		return true
	}
	switch n.Tipo {
	case TipoAlertaFaltante, TipoDefectoCalidad:
		return true
	}
	return false
}
