package main

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/flatgeobuf/flatgeobuf/src/go/flattypes"
	"github.com/flatgeobuf/flatgeobuf/src/go/writer"
	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	wkt "github.com/tingold/orb-wkt"
)

type Landmark struct {
	Name string
	WKT  string
}

var landmarks = []Landmark{
	{"Eiffel Tower", "POINT(2.2945 48.8584)"},
	{"Thames Path", "LINESTRING(-0.1276 51.5074,-0.1195 51.5033,-0.104 51.5055)"},
	{"Central Park", "POLYGON((-73.9819 40.7681,-73.958 40.8005,-73.9498 40.7968,-73.9737 40.7644,-73.9819 40.7681))"},
	{"Harbour Buoys", "MULTIPOINT(POINT(151.21 -33.85),POINT(151.22 -33.86),POINT(151.23 -33.84))"},
	{"Museum Island", "GEOMETRYCOLLECTION(POINT(13.4021 52.5212),POLYGON((13.394 52.516,13.407 52.516,13.407 52.524,13.394 52.524,13.394 52.516)))"},
}

func main() {
	// Parse the WKT dataset once at startup.
	var geometries []orb.Geometry
	fc := geojson.NewFeatureCollection()

	for _, lm := range landmarks {
		geom, err := wkt.Unmarshal(lm.WKT)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", lm.Name, err)
		}
		geometries = append(geometries, geom)

		f := geojson.NewFeature(geom)
		f.Properties = geojson.Properties{"name": lm.Name}
		fc.Append(f)
	}

	geojsonData, err := json.Marshal(fc)
	if err != nil {
		log.Fatalf("Failed to encode GeoJSON: %v", err)
	}

	flatgeobufData, err := buildFlatGeobuf(geometries)
	if err != nil {
		log.Fatalf("Failed to encode FlatGeobuf: %v", err)
	}

	http.HandleFunc("/data.geojson", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/geo+json")
		w.Write(geojsonData)
	})

	http.HandleFunc("/data.fgb", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		w.Write(flatgeobufData)
	})

	// POST a WKT body, get the geometry back as GeoJSON.
	http.HandleFunc("/convert", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "POST a WKT body", http.StatusMethodNotAllowed)
			return
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		geom, err := wkt.Unmarshal(string(body))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(geojson.NewGeometry(geom))
	})

	log.Println("Server starting on http://localhost:8080")
	log.Println("  GET  /data.geojson - landmarks as GeoJSON")
	log.Println("  GET  /data.fgb     - landmarks as FlatGeobuf")
	log.Println("  POST /convert      - WKT body in, GeoJSON out")

	log.Fatal(http.ListenAndServe(":8080", nil))
}

// buildFlatGeobuf encodes the parsed geometries as a FlatGeobuf payload.
func buildFlatGeobuf(geometries []orb.Geometry) ([]byte, error) {
	builder := flatbuffers.NewBuilder(4096)

	header := writer.NewHeader(builder)
	header.SetName("landmarks")
	header.SetGeometryType(flattypes.GeometryTypeUnknown)

	gen := &wktFeatureGenerator{geometries: geometries}
	fgbWriter := writer.NewWriter(header, false, gen, nil)

	var buf bytes.Buffer
	if _, err := fgbWriter.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// wktFeatureGenerator feeds parsed geometries to the FlatGeobuf writer.
type wktFeatureGenerator struct {
	geometries []orb.Geometry
	index      int
}

func (g *wktFeatureGenerator) Generate() *writer.Feature {
	if g.index >= len(g.geometries) {
		return nil
	}

	geom := g.geometries[g.index]
	g.index++

	builder := flatbuffers.NewBuilder(1024)
	fgbGeom := toFGB(geom, builder)
	if fgbGeom == nil {
		return g.Generate() // Skip unsupported geometries
	}

	feature := writer.NewFeature(builder)
	feature.SetGeometry(fgbGeom)

	return feature
}

// toFGB converts the geometry kinds the demo serves to FlatGeobuf writer
// geometries.
func toFGB(geom orb.Geometry, builder *flatbuffers.Builder) *writer.Geometry {
	g := writer.NewGeometry(builder)

	switch v := geom.(type) {
	case orb.Point:
		g.SetType(flattypes.GeometryTypePoint)
		g.SetXY([]float64{v[0], v[1]})

	case orb.LineString:
		g.SetType(flattypes.GeometryTypeLineString)
		xy := make([]float64, 0, len(v)*2)
		for _, p := range v {
			xy = append(xy, p[0], p[1])
		}
		g.SetXY(xy)

	case orb.Polygon:
		g.SetType(flattypes.GeometryTypePolygon)
		var xy []float64
		var ends []uint32
		cumulative := uint32(0)
		for _, ring := range v {
			for _, p := range ring {
				xy = append(xy, p[0], p[1])
			}
			cumulative += uint32(len(ring))
			ends = append(ends, cumulative)
		}
		g.SetXY(xy)
		g.SetEnds(ends)

	case orb.Collection:
		g.SetType(flattypes.GeometryTypeGeometryCollection)
		parts := make([]writer.Geometry, 0, len(v))
		for _, child := range v {
			childGeom := toFGB(child, builder)
			if childGeom != nil {
				parts = append(parts, *childGeom)
			}
		}
		g.SetParts(parts)

	default:
		return nil
	}

	return g
}
