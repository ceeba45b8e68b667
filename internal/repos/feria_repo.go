package repos

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"tienda3d/internal/domain"
)

// ErrStockInsuficiente aborts a sales batch that would oversell a line.
var ErrStockInsuficiente = fmt.Errorf("stock insuficiente")

type FeriaRepo struct{ db *sqlx.DB }

func NewFeriaRepo(db *sqlx.DB) *FeriaRepo { return &FeriaRepo{db: db} }

func (r *FeriaRepo) List() ([]domain.Feria, error) {
	rows := []domain.Feria{}
	err := r.db.Select(&rows, `SELECT * FROM ferias WHERE activo = TRUE ORDER BY fecha_desde DESC, id DESC`)
	return rows, err
}

func (r *FeriaRepo) Get(id int64) (*domain.Feria, error) {
	var f domain.Feria
	if err := r.db.Get(&f, r.db.Rebind(`SELECT * FROM ferias WHERE id = ?`), id); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *FeriaRepo) Create(f *domain.Feria) (int64, error) {
	var id int64
	err := r.db.Get(&id, r.db.Rebind(`
	  INSERT INTO ferias (nombre, fecha_desde, fecha_hasta, direccion, organizadores, contacto, valor)
	  VALUES (?, ?, ?, ?, ?, ?, ?)
	  RETURNING id`),
		f.Nombre, f.FechaDesde, f.FechaHasta, f.Direccion, f.Organizadores, f.Contacto, f.Valor)
	return id, err
}

func (r *FeriaRepo) Update(id int64, u domain.FeriaUpdate) error {
	var sets []string
	var args []any

	if u.Nombre != nil {
		sets = append(sets, "nombre = ?")
		args = append(args, *u.Nombre)
	}
	if u.FechaDesde != nil {
		sets = append(sets, "fecha_desde = ?")
		args = append(args, *u.FechaDesde)
	}
	if u.FechaHasta != nil {
		sets = append(sets, "fecha_hasta = ?")
		args = append(args, *u.FechaHasta)
	}
	if u.Direccion != nil {
		sets = append(sets, "direccion = ?")
		args = append(args, *u.Direccion)
	}
	if u.Organizadores != nil {
		sets = append(sets, "organizadores = ?")
		args = append(args, *u.Organizadores)
	}
	if u.Contacto != nil {
		sets = append(sets, "contacto = ?")
		args = append(args, *u.Contacto)
	}
	if u.Valor != nil {
		sets = append(sets, "valor = ?")
		args = append(args, *u.Valor)
	}
	if u.Activo != nil {
		sets = append(sets, "activo = ?")
		args = append(args, *u.Activo)
	}
	if len(sets) == 0 {
		return nil
	}

	query := "UPDATE ferias SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	res, err := r.db.Exec(r.db.Rebind(query), append(args, id)...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *FeriaRepo) SoftDelete(id int64) error {
	res, err := r.db.Exec(r.db.Rebind(`UPDATE ferias SET activo = FALSE WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Stock reports per-product allocation, summed sales and remaining stock
// for a feria.
func (r *FeriaRepo) Stock(feriaID int64) ([]domain.FeriaStock, error) {
	rows := []domain.FeriaStock{}
	err := r.db.Select(&rows, r.db.Rebind(`
	  SELECT
	    fp.producto_id AS id,
	    p.nombre,
	    fp.cantidad AS stock_inicial,
	    COALESCE(v.vendidos, 0) AS vendidos,
	    fp.cantidad - COALESCE(v.vendidos, 0) AS stock_actual,
	    p.total,
	    (fp.cantidad - COALESCE(v.vendidos, 0)) * COALESCE(p.total, 0) AS total_linea
	  FROM feria_productos fp
	  JOIN productos p ON fp.producto_id = p.id
	  LEFT JOIN (
	    SELECT feria_id, producto_id, SUM(cantidad) AS vendidos
	    FROM ventas_feria
	    GROUP BY feria_id, producto_id
	  ) v ON v.feria_id = fp.feria_id AND v.producto_id = fp.producto_id
	  WHERE fp.feria_id = ?
	  ORDER BY p.nombre`), feriaID)
	return rows, err
}

// ReplaceInventory swaps the feria's product list wholesale: prior rows are
// deleted and the submitted list inserted, all in one transaction.
func (r *FeriaRepo) ReplaceInventory(feriaID int64, items []domain.FeriaProducto) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(tx.Rebind(`DELETE FROM feria_productos WHERE feria_id = ?`), feriaID); err != nil {
		return err
	}
	for _, it := range items {
		_, err := tx.Exec(tx.Rebind(`
		  INSERT INTO feria_productos (feria_id, producto_id, cantidad)
		  VALUES (?, ?, ?)`), feriaID, it.ProductoID, it.Cantidad)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecordSales appends the sale lines in one transaction. With clamp set, a
// line that would push remaining stock below zero aborts the whole batch.
func (r *FeriaRepo) RecordSales(feriaID int64, ventas []domain.Venta, clamp bool) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, v := range ventas {
		if clamp {
			var restante int
			err := tx.Get(&restante, tx.Rebind(`
			  SELECT fp.cantidad - COALESCE((
			    SELECT SUM(vf.cantidad) FROM ventas_feria vf
			    WHERE vf.feria_id = fp.feria_id AND vf.producto_id = fp.producto_id
			  ), 0)
			  FROM feria_productos fp
			  WHERE fp.feria_id = ? AND fp.producto_id = ?`), feriaID, v.ProductoID)
			if err == sql.ErrNoRows {
				restante = 0
				err = nil
			}
			if err != nil {
				return err
			}
			if v.Cantidad > restante {
				return fmt.Errorf("%w para producto %d (quedan %d)", ErrStockInsuficiente, v.ProductoID, restante)
			}
		}
		_, err := tx.Exec(tx.Rebind(`
		  INSERT INTO ventas_feria (feria_id, producto_id, cantidad, medio_pago)
		  VALUES (?, ?, ?, ?)`), feriaID, v.ProductoID, v.Cantidad, v.MedioPago)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
