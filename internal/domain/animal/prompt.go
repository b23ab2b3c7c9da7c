package animal

// Prompt is sent with every image. The keys match Record's JSON tags.
const Prompt = `Responde solo con un objeto JSON con las siguientes claves, sin explicaciones ni comentarios adicionales. Si no puedes identificar un dato, usa "Desconocido" o "Desconocida" según corresponda:
{
    "nombre_comun": "valor",
    "nombre_cientifico": "valor",
    "clasificacion": {
        "clase": "valor",
        "orden": "valor",
        "familia": "valor"
    },
    "habitat": {
        "tipos": ["valor"],
        "region": ["valor"],
        "clima": ["valor"]
    },
    "dieta": {
        "tipo": "valor",
        "alimentos_principales": ["valor"]
    },
    "caracteristicas_fisicas": {
        "tamaño": {
            "altura_promedio_cm": "valor",
            "peso_promedio_kg": "valor"
        },
        "colores_dominantes": ["valor"],
        "rasgos_distintivos": ["valor"]
    },
    "estado_conservacion": {
        "clasificacion_IUCN": "valor",
        "amenazas_principales": ["valor"]
    }
}`
